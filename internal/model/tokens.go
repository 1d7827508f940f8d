package model

// TokenType определяет, на каком пути валидации токен принимается
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenPair содержит пару access и refresh токенов
// swagger:model
type TokenPair struct {
	// Access токен (JWT)
	// example: eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"access_token"`

	// Refresh токен (JWT), принимается только /auth/refresh
	RefreshToken string `json:"refresh_token"`

	// Время жизни access токена в секундах
	ExpiresIn int64 `json:"expires_in"`
}

// ClientKind : способ доставки токенов клиенту
type ClientKind int

const (
	// ClientWeb получает токены в httpOnly cookie
	ClientWeb ClientKind = iota
	// ClientNative получает токены в теле ответа и шлёт их в Authorization
	ClientNative
)

func (k ClientKind) String() string {
	if k == ClientNative {
		return "native"
	}
	return "web"
}
