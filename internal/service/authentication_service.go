package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"session-security/internal/model"
	"session-security/internal/ports"
	"session-security/internal/util"
)

const (
	outcomeSuccess            = "success"
	outcomeBadRequest         = "bad_request"
	outcomeInvalidCredentials = "invalid_credentials"
	outcomeInvalidToken       = "invalid_token"
	outcomeError              = "error"
)

type AuthenticationService struct {
	credentials ports.CredentialVerifier
	tokens      ports.TokenIssuer
	publisher   ports.EventPublisher
	metrics     ports.AuthMetrics
	now         func() time.Time
}

func NewAuthenticationService(
	credentials ports.CredentialVerifier,
	tokens ports.TokenIssuer,
	publisher ports.EventPublisher,
	metrics ports.AuthMetrics,
) *AuthenticationService {
	return &AuthenticationService{
		credentials: credentials,
		tokens:      tokens,
		publisher:   publisher,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Login проверяет учётные данные и выпускает пару токенов.
// Отсутствие пользователя и неверный пароль неразличимы для клиента
func (s *AuthenticationService) Login(ctx context.Context, email, password string, client model.ClientKind) (*ports.LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		s.metrics.LoginAttempt(outcomeBadRequest, client.String())
		return nil, util.BadRequest("Email and password are required", nil)
	}

	user, err := s.credentials.VerifyCredentials(ctx, email, password)
	if err != nil {
		if util.KindOf(err) == util.KindUnauthorized {
			s.metrics.LoginAttempt(outcomeInvalidCredentials, client.String())
			s.publish(ctx, &model.SessionEvent{Type: model.SessionLoginFailed, Email: normalizeEmail(email), ClientKind: client.String()})
		} else {
			s.metrics.LoginAttempt(outcomeError, client.String())
		}
		return nil, err
	}

	tokens, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		s.metrics.LoginAttempt(outcomeError, client.String())
		return nil, util.Internal("Failed to issue tokens", err)
	}

	s.metrics.LoginAttempt(outcomeSuccess, client.String())
	s.publish(ctx, &model.SessionEvent{Type: model.SessionLogin, UserID: user.ID, Email: user.Email, ClientKind: client.String()})

	return &ports.LoginResult{User: user, Tokens: tokens}, nil
}

// Refresh выпускает только новый access токен. Refresh токен и его срок не меняются
func (s *AuthenticationService) Refresh(ctx context.Context, refreshToken string, client model.ClientKind) (string, int64, error) {
	if refreshToken == "" {
		s.metrics.RefreshAttempt(outcomeBadRequest, client.String())
		return "", 0, util.Unauthorized("Refresh token required", nil)
	}

	claims, err := s.tokens.ValidateAs(refreshToken, model.TokenTypeRefresh)
	if err != nil {
		s.metrics.RefreshAttempt(outcomeInvalidToken, client.String())
		return "", 0, util.Unauthorized("Invalid or expired refresh token", err)
	}

	userID, err := claims.UserID()
	if err != nil {
		s.metrics.RefreshAttempt(outcomeInvalidToken, client.String())
		return "", 0, util.Unauthorized("Invalid or expired refresh token", err)
	}

	accessToken, err := s.tokens.IssueAccessOnly(userID, claims.Email)
	if err != nil {
		s.metrics.RefreshAttempt(outcomeError, client.String())
		return "", 0, util.Internal("Failed to issue access token", err)
	}

	s.metrics.RefreshAttempt(outcomeSuccess, client.String())
	s.publish(ctx, &model.SessionEvent{Type: model.SessionRefresh, UserID: userID, Email: claims.Email, TokenID: claims.ID, ClientKind: client.String()})

	return accessToken, int64(s.tokens.AccessTTL() / time.Second), nil
}

// Logout ничего не отзывает: токены остаются валидными до истечения exp.
// Если передан валидный access токен, событие содержит пользователя
func (s *AuthenticationService) Logout(ctx context.Context, accessToken string, client model.ClientKind) {
	event := &model.SessionEvent{Type: model.SessionLogout, ClientKind: client.String()}

	if accessToken != "" {
		if claims, err := s.tokens.ValidateAs(accessToken, model.TokenTypeAccess); err == nil {
			event.UserID, _ = claims.UserID()
			event.Email = claims.Email
			event.TokenID = claims.ID
		}
	}

	s.metrics.Logout(client.String())
	s.publish(ctx, event)
}

func (s *AuthenticationService) publish(ctx context.Context, event *model.SessionEvent) {
	publishSessionEvent(ctx, s.publisher, event, s.now())
}

// publishSessionEvent не прерывает запрос: аудит вторичен
func publishSessionEvent(ctx context.Context, publisher ports.EventPublisher, event *model.SessionEvent, at time.Time) {
	event.OccurredAt = at.UTC()
	if err := publisher.Publish(ctx, event); err != nil {
		slog.Warn("не удалось опубликовать событие сессии", "type", event.Type, "error", err)
	}
}
