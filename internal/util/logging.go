package util

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"session-security/internal/model/requestresponse"
)

// LogError пишет ошибку в лог и возвращает её обёрнутой сообщением
func LogError(message string, err error) error {
	slog.Error(message, "error", err)
	return fmt.Errorf("%s: %w", message, err)
}

// HandleError отправляет клиенту ошибку в формате requestresponse.ErrorResponse
func HandleError(w http.ResponseWriter, message string, statusCode int) {
	WriteJSON(w, statusCode, requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{
			Code: statusCode,
			Text: message,
		},
	})
}

func WriteJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("ошибка кодирования ответа", "error", err)
	}
}
