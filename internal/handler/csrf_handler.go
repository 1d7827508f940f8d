package handler

import (
	"net/http"

	"session-security/internal/model/requestresponse"
	"session-security/internal/security"
	"session-security/internal/util"
)

type CSRFHandler struct {
	guard *security.CSRFGuard
}

func NewCSRFHandler(guard *security.CSRFGuard) *CSRFHandler {
	return &CSRFHandler{guard: guard}
}

// GetCSRFToken godoc
// @Summary Получение CSRF токена
// @Description Выдаёт новый токен в теле и в cookie csrf_token. Значение нужно передавать в X-CSRF-Token
// @Tags CSRF
// @Produce json
// @Success 200 {object} requestresponse.CSRFTokenResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/csrf [get]
func (h *CSRFHandler) GetCSRFToken(w http.ResponseWriter, r *http.Request) {
	token, err := h.guard.Issue(w)
	if err != nil {
		util.WriteAppError(w, util.Internal("Internal server error", err))
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	util.WriteJSON(w, http.StatusOK, requestresponse.CSRFTokenResponse{CSRFToken: token})
}
