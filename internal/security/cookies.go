package security

import (
	"net/http"
	"time"

	"session-security/config"
)

// CookieBuilder собирает Set-Cookie для токенов. Все атрибуты фиксируются при создании
type CookieBuilder struct {
	accessName  string
	refreshName string
	csrfName    string
	refreshPath string
	domain      string
	secure      bool
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewCookieBuilder(cfg *config.CookieConfig, accessTTL, refreshTTL time.Duration) *CookieBuilder {
	return &CookieBuilder{
		accessName:  cfg.AccessName,
		refreshName: cfg.RefreshName,
		csrfName:    cfg.CSRFName,
		refreshPath: cfg.RefreshPath,
		domain:      cfg.Domain,
		secure:      cfg.Secure,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

func (b *CookieBuilder) AccessName() string  { return b.accessName }
func (b *CookieBuilder) RefreshName() string { return b.refreshName }
func (b *CookieBuilder) CSRFName() string    { return b.csrfName }

func (b *CookieBuilder) SetAccess(w http.ResponseWriter, token string) {
	http.SetCookie(w, b.build(b.accessName, token, "/", int(b.accessTTL/time.Second), true))
}

// SetRefresh ограничивает cookie путём группы /auth
func (b *CookieBuilder) SetRefresh(w http.ResponseWriter, token string) {
	http.SetCookie(w, b.build(b.refreshName, token, b.refreshPath, int(b.refreshTTL/time.Second), true))
}

// SetCSRF не ставит HttpOnly: скрипт клиента читает значение и кладёт его в заголовок
func (b *CookieBuilder) SetCSRF(w http.ResponseWriter, token string) {
	http.SetCookie(w, b.build(b.csrfName, token, "/", 0, false))
}

// ClearAuth удаляет access и refresh cookie (пустое значение, Max-Age=0)
func (b *CookieBuilder) ClearAuth(w http.ResponseWriter) {
	http.SetCookie(w, b.build(b.accessName, "", "/", -1, true))
	http.SetCookie(w, b.build(b.refreshName, "", b.refreshPath, -1, true))
}

func (b *CookieBuilder) build(name, value, path string, maxAge int, httpOnly bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Domain:   b.domain,
		MaxAge:   maxAge,
		HttpOnly: httpOnly,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
