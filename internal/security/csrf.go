package security

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"session-security/internal/model"
	"session-security/internal/util"
)

const (
	CSRFHeaderName = "X-CSRF-Token"
	csrfTokenBytes = 32

	csrfMissingMessage = "CSRF token missing. Fetch /api/v1/csrf first."
	csrfInvalidMessage = "CSRF token invalid"
)

// CSRFRejectionObserver получает причину каждого отказа (метрики)
type CSRFRejectionObserver interface {
	CSRFRejected(reason string)
}

// GenerateCSRFToken возвращает 32 случайных байта в hex (64 символа)
func GenerateCSRFToken() (string, error) {
	token, err := util.RandomHexToken(csrfTokenBytes)
	if err != nil {
		return "", fmt.Errorf("ошибка генерации csrf токена: %w", err)
	}
	return token, nil
}

// ConstantTimeEqual : разная длина сразу даёт false, содержимое сравнивается за постоянное время
func ConstantTimeEqual(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// CSRFGuard реализует double-submit cookie. Токены на сервере не хранятся
type CSRFGuard struct {
	cookies  *CookieBuilder
	observer CSRFRejectionObserver
}

func NewCSRFGuard(cookies *CookieBuilder, observer CSRFRejectionObserver) *CSRFGuard {
	return &CSRFGuard{cookies: cookies, observer: observer}
}

// Issue выпускает новый токен и кладёт его в cookie, предыдущий перестаёт действовать
func (g *CSRFGuard) Issue(w http.ResponseWriter) (string, error) {
	token, err := GenerateCSRFToken()
	if err != nil {
		return "", err
	}

	g.cookies.SetCSRF(w, token)
	return token, nil
}

func (g *CSRFGuard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSafeMethod(r.Method) || DetectClientKind(r.Header) == model.ClientNative {
			next.ServeHTTP(w, r)
			return
		}

		cookie, err := r.Cookie(g.cookies.CSRFName())
		if err != nil || cookie.Value == "" {
			g.reject(w, "missing_cookie", csrfMissingMessage)
			return
		}

		header := r.Header.Get(CSRFHeaderName)
		if header == "" {
			g.reject(w, "missing_header", csrfInvalidMessage)
			return
		}

		if !ConstantTimeEqual(cookie.Value, header) {
			g.reject(w, "mismatch", csrfInvalidMessage)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (g *CSRFGuard) reject(w http.ResponseWriter, reason, message string) {
	if g.observer != nil {
		g.observer.CSRFRejected(reason)
	}
	util.HandleError(w, message, http.StatusForbidden)
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
