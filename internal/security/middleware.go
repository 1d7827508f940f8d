package security

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"session-security/internal/model"
	"session-security/internal/util"
)

type contextKey string

const (
	UserContextKey contextKey = "user"

	bearerPrefix = "Bearer "
)

// TokenValidator : часть JWTService, нужная middleware
type TokenValidator interface {
	ValidateAs(tokenStr string, required model.TokenType) (*Claims, error)
}

// ExtractToken берёт токен из Authorization: Bearer, иначе из access cookie.
// При наличии обоих побеждает заголовок. Схема сравнивается без учёта регистра
func ExtractToken(r *http.Request, accessCookieName string) (string, bool) {
	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		return token, true
	}

	cookie, err := r.Cookie(accessCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func bearerToken(header string) (string, bool) {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	return token, token != ""
}

func JWTMiddleware(validator TokenValidator, accessCookieName string) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(handleAuthentication(validator, accessCookieName, next))
	}
}

func handleAuthentication(validator TokenValidator, accessCookieName string, next http.Handler) func(writer http.ResponseWriter, request *http.Request) {
	return func(writer http.ResponseWriter, request *http.Request) {
		token, ok := ExtractToken(request, accessCookieName)
		if !ok {
			util.HandleError(writer, "Authentication required", http.StatusUnauthorized)
			return
		}

		claims, err := validator.ValidateAs(token, model.TokenTypeAccess)
		if err != nil {
			slog.Warn("невалидный access токен", "error", err, "path", request.URL.Path)
			util.HandleError(writer, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(request.Context(), UserContextKey, claims)
		next.ServeHTTP(writer, request.WithContext(ctx))
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	return claims, ok
}
