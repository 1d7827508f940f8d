package security

import (
	"net/http"
	"strings"

	"session-security/internal/model"
)

const ClientTypeHeader = "X-Client-Type"

// DetectClientKind : единственное место, где решается способ доставки токенов.
// Native только при X-Client-Type: native (без учёта регистра)
func DetectClientKind(h http.Header) model.ClientKind {
	if strings.EqualFold(strings.TrimSpace(h.Get(ClientTypeHeader)), "native") {
		return model.ClientNative
	}
	return model.ClientWeb
}
