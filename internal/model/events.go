package model

import "time"

type SessionEventType string

const (
	SessionLogin        SessionEventType = "session.login"
	SessionLoginFailed  SessionEventType = "session.login_failed"
	SessionRefresh      SessionEventType = "session.refresh"
	SessionLogout       SessionEventType = "session.logout"
	SessionRegistration SessionEventType = "session.registration"
)

// SessionEvent : запись аудита. Токены и пароли сюда не попадают
type SessionEvent struct {
	Type       SessionEventType `json:"type"`
	UserID     int64            `json:"user_id,omitempty"`
	Email      string           `json:"email,omitempty"`
	TokenID    string           `json:"token_id,omitempty"`
	ClientKind string           `json:"client_kind"`
	OccurredAt time.Time        `json:"occurred_at"`
}
