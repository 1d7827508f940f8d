package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"session-security/internal/model"
	"session-security/internal/model/requestresponse"
	"session-security/internal/ports"
	"session-security/internal/security"
	"session-security/internal/util"
)

// лимит JSON тела запроса
const maxBodyBytes = 64 << 10

type AuthenticationHandler struct {
	ports.AuthenticationService
	users   ports.UserService
	cookies *security.CookieBuilder
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	userService ports.UserService,
	cookies *security.CookieBuilder,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		AuthenticationService: authenticationService,
		users:                 userService,
		cookies:               cookies,
	}
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Web клиенты получают токены в httpOnly cookie, native клиенты (X-Client-Type: native) в теле ответа
// @Tags Authentication
// @Accept json
// @Produce json
// @Param X-Client-Type header string false "native для доставки токенов в теле"
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.LoginResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный email или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Failure 503 {object} requestresponse.ErrorResponse
// @Router /api/v1/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	client := security.DetectClientKind(r.Header)

	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	result, err := h.AuthenticationService.Login(r.Context(), req.Email, req.Password, client)
	if err != nil {
		util.WriteAppError(w, err)
		return
	}

	resp := requestresponse.LoginResponse{
		Success:   true,
		Message:   "Login successful",
		ExpiresIn: result.Tokens.ExpiresIn,
	}

	switch client {
	case model.ClientNative:
		resp.AccessToken = result.Tokens.AccessToken
		resp.RefreshToken = result.Tokens.RefreshToken
	default:
		h.cookies.SetAccess(w, result.Tokens.AccessToken)
		h.cookies.SetRefresh(w, result.Tokens.RefreshToken)
	}

	util.WriteJSON(w, http.StatusOK, resp)
}

// RefreshToken godoc
// @Summary Обновление access токена
// @Description Refresh токен берётся из тела ({"refresh_token": ...}), если тело его содержит, иначе из cookie. Refresh токен не перевыпускается
// @Tags Authentication
// @Accept json
// @Produce json
// @Param X-Client-Type header string false "native для доставки токена в теле"
// @Param X-CSRF-Token header string false "Обязателен для web клиентов"
// @Param body body requestresponse.RefreshTokenRequest false "Тело запроса (native)"
// @Success 200 {object} requestresponse.RefreshTokenResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse "CSRF"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthenticationHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	client := security.DetectClientKind(r.Header)

	refreshToken, ok := refreshTokenFromBody(w, r)
	if !ok {
		if cookie, err := r.Cookie(h.cookies.RefreshName()); err == nil {
			refreshToken = cookie.Value
		}
	}

	accessToken, expiresIn, err := h.AuthenticationService.Refresh(r.Context(), refreshToken, client)
	if err != nil {
		util.WriteAppError(w, err)
		return
	}

	resp := requestresponse.RefreshTokenResponse{
		Success:   true,
		ExpiresIn: expiresIn,
	}

	switch client {
	case model.ClientNative:
		resp.AccessToken = accessToken
	default:
		h.cookies.SetAccess(w, accessToken)
	}

	util.WriteJSON(w, http.StatusOK, resp)
}

// Logout godoc
// @Summary Выход
// @Description Удаляет cookie с токенами. Сами токены остаются валидными до истечения срока
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.MessageResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	client := security.DetectClientKind(r.Header)
	accessToken, _ := security.ExtractToken(r, h.cookies.AccessName())

	h.AuthenticationService.Logout(r.Context(), accessToken, client)
	h.cookies.ClearAuth(w)

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{
		Success: true,
		Message: "Logged out successfully",
	})
}

// GetCurrentUser godoc
// @Summary Текущий пользователь
// @Description Профиль пользователя из access токена (Bearer или cookie)
// @Tags Authentication
// @Produce json
// @Param Authorization header string false "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.CurrentUserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/v1/auth/me [get]
func (h *AuthenticationHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := security.GetClaimsFromContext(r.Context())
	if !ok || claims == nil {
		sendErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	userID, err := claims.UserID()
	if err != nil {
		sendErrorResponse(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	profile, err := h.users.Profile(r.Context(), userID)
	if err != nil {
		util.WriteAppError(w, err)
		return
	}

	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.CurrentUserResponse{
		ID:        profile.ID,
		Email:     profile.Email,
		Name:      profile.Name,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Unix(),
	})
}

// refreshTokenFromBody : ok=true, если тело это JSON с полем refresh_token.
// Тогда значение используется даже пустым, cookie не читается
func refreshTokenFromBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Body == nil || !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return "", false
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil || len(bytes.TrimSpace(body)) == 0 {
		return "", false
	}

	var req requestresponse.RefreshTokenRequest
	if err := json.Unmarshal(body, &req); err != nil || req.RefreshToken == nil {
		return "", false
	}

	return *req.RefreshToken, true
}
