package util

import (
	"errors"
	"log/slog"
	"net/http"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindBadRequest
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindServiceUnavailable
)

// AppError : ошибка, которую можно показать клиенту.
// Message уходит в ответ, Err только в лог
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{Kind: KindBadRequest, Message: message, Err: err}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{Kind: KindUnauthorized, Message: message, Err: err}
}

func Forbidden(message string, err error) *AppError {
	return &AppError{Kind: KindForbidden, Message: message, Err: err}
}

func NotFound(message string, err error) *AppError {
	return &AppError{Kind: KindNotFound, Message: message, Err: err}
}

func Conflict(message string, err error) *AppError {
	return &AppError{Kind: KindConflict, Message: message, Err: err}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Message: message, Err: err}
}

func ServiceUnavailable(message string, err error) *AppError {
	return &AppError{Kind: KindServiceUnavailable, Message: message, Err: err}
}

// KindOf возвращает KindInternal для любых ошибок кроме *AppError
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// WriteAppError отвечает клиенту общим сообщением, детали пишутся только в лог
func WriteAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		slog.Error("необработанная ошибка", "error", err)
		HandleError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if appErr.Kind == KindInternal {
		slog.Error(appErr.Message, "error", appErr.Err)
	} else if appErr.Err != nil {
		slog.Warn(appErr.Message, "error", appErr.Err)
	}

	HandleError(w, appErr.Message, appErr.StatusCode())
}
