package ports

import (
	"time"

	"session-security/internal/model"
	"session-security/internal/security"
)

// TokenIssuer : Token Engine с точки зрения сервисов
type TokenIssuer interface {
	IssuePair(userID int64, email string) (*model.TokenPair, error)
	IssueAccessOnly(userID int64, email string) (string, error)
	ValidateAs(tokenStr string, required model.TokenType) (*security.Claims, error)
	AccessTTL() time.Duration
}
