package security

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"session-security/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCookieHeaders(rec *httptest.ResponseRecorder) []string {
	return rec.Result().Header.Values("Set-Cookie")
}

func TestCookieBuilder_AccessAndRefresh(t *testing.T) {
	b := newTestCookieBuilder(false)
	rec := httptest.NewRecorder()

	b.SetAccess(rec, "access-value")
	b.SetRefresh(rec, "refresh-value")

	headers := setCookieHeaders(rec)
	require.Len(t, headers, 2)

	assert.Equal(t, "access_token=access-value; Path=/; Max-Age=900; HttpOnly; SameSite=Lax", headers[0])
	assert.Equal(t, "refresh_token=refresh-value; Path=/api/v1/auth; Max-Age=604800; HttpOnly; SameSite=Lax", headers[1])
}

func TestCookieBuilder_SecureInProduction(t *testing.T) {
	b := newTestCookieBuilder(true)
	rec := httptest.NewRecorder()

	b.SetAccess(rec, "a")
	b.SetRefresh(rec, "r")
	b.SetCSRF(rec, "c")

	for _, header := range setCookieHeaders(rec) {
		assert.Contains(t, header, "; Secure")
	}
}

func TestCookieBuilder_ClearAuth(t *testing.T) {
	b := newTestCookieBuilder(false)
	rec := httptest.NewRecorder()

	b.ClearAuth(rec)

	headers := setCookieHeaders(rec)
	require.Len(t, headers, 2)
	assert.True(t, strings.HasPrefix(headers[0], "access_token=; Path=/; Max-Age=0"))
	assert.True(t, strings.HasPrefix(headers[1], "refresh_token=; Path=/api/v1/auth; Max-Age=0"))
}

func TestDetectClientKind(t *testing.T) {
	tests := []struct {
		value string
		want  model.ClientKind
	}{
		{"", model.ClientWeb},
		{"native", model.ClientNative},
		{"Native", model.ClientNative},
		{"NATIVE", model.ClientNative},
		{"web", model.ClientWeb},
		{"native-app", model.ClientWeb},
	}

	for _, tt := range tests {
		h := http.Header{}
		if tt.value != "" {
			h.Set(ClientTypeHeader, tt.value)
		}
		assert.Equal(t, tt.want, DetectClientKind(h), tt.value)
	}
}
