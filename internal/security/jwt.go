package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"session-security/config"
	"session-security/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrSigningFailed    = errors.New("token signing failed")
	ErrTokenExpired     = errors.New("token has expired")
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrWrongTokenType   = errors.New("wrong token type")
)

// Claims : полезная нагрузка токена. sub — id пользователя строкой, jti — уникален для каждой выдачи
type Claims struct {
	Email     string          `json:"email"`
	TokenType model.TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// UserID разбирает sub как int64
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject %q", ErrTokenMalformed, c.Subject)
	}
	return id, nil
}

// JWTService выпускает и проверяет HS512 токены. После создания не изменяется
type JWTService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	issuer     string
	leeway     time.Duration
	now        func() time.Time
}

func NewJWTService(cfg *config.JWTConfig) (*JWTService, error) {
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("пустой секрет подписи токенов")
	}

	accessTTL, err := time.ParseDuration(cfg.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга access_token_ttl: %w", err)
	}
	refreshTTL, err := time.ParseDuration(cfg.RefreshTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга refresh_token_ttl: %w", err)
	}
	if accessTTL < time.Second || refreshTTL < time.Second {
		return nil, fmt.Errorf("время жизни токенов должно быть не меньше секунды")
	}

	var leeway time.Duration
	if cfg.Leeway != "" {
		leeway, err = time.ParseDuration(cfg.Leeway)
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга leeway: %w", err)
		}
	}

	return &JWTService{
		secret:     []byte(cfg.SecretKey),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		issuer:     cfg.Issuer,
		leeway:     leeway,
		now:        time.Now,
	}, nil
}

func (s *JWTService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *JWTService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// IssuePair выпускает access и refresh токены для пользователя
func (s *JWTService) IssuePair(userID int64, email string) (*model.TokenPair, error) {
	accessToken, err := s.sign(userID, email, model.TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign(userID, email, model.TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}

	return &model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.accessTTL / time.Second),
	}, nil
}

// IssueAccessOnly используется при refresh: срок жизни refresh токена не продлевается
func (s *JWTService) IssueAccessOnly(userID int64, email string) (string, error) {
	return s.sign(userID, email, model.TokenTypeAccess, s.accessTTL)
}

func (s *JWTService) sign(userID int64, email string, tokenType model.TokenType, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %s token: %v", ErrSigningFailed, tokenType, err)
	}

	return signed, nil
}

// Validate проверяет подпись и срок действия. Любой дефект — отказ
func (s *JWTService) Validate(tokenStr string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, classifyParseError(err)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.IssuedAt == nil || !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		return nil, fmt.Errorf("%w: exp must be after iat", ErrTokenMalformed)
	}
	if claims.ID == "" {
		return nil, fmt.Errorf("%w: missing jti", ErrTokenMalformed)
	}
	if _, err := claims.UserID(); err != nil {
		return nil, err
	}

	return claims, nil
}

// ValidateAs дополнительно проверяет тип токена.
// Тип читается только из claims с уже проверенной подписью
func (s *JWTService) ValidateAs(tokenStr string, required model.TokenType) (*Claims, error) {
	claims, err := s.Validate(tokenStr)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != required {
		return nil, fmt.Errorf("%w: want %s, got %q", ErrWrongTokenType, required, claims.TokenType)
	}

	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrTokenExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	default:
		return fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
}
