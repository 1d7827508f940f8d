package service_test

import (
	"context"
	"errors"
	"testing"

	"session-security/internal/model"
	"session-security/internal/security"
	"session-security/internal/service"
	"session-security/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthenticationService_Login(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: 1, Email: "a@b.com", IsActive: true}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(c *MockCredentialVerifier, p *MockEventPublisher, m *MockAuthMetrics)
		wantKind   util.ErrorKind
		wantErr    bool
	}{
		{
			name:     "empty email",
			email:    "",
			password: "Secure123",
			setupMocks: func(c *MockCredentialVerifier, p *MockEventPublisher, m *MockAuthMetrics) {
				m.On("LoginAttempt", "bad_request", "web").Once()
			},
			wantKind: util.KindBadRequest,
			wantErr:  true,
		},
		{
			name:     "empty password",
			email:    "a@b.com",
			password: "",
			setupMocks: func(c *MockCredentialVerifier, p *MockEventPublisher, m *MockAuthMetrics) {
				m.On("LoginAttempt", "bad_request", "web").Once()
			},
			wantKind: util.KindBadRequest,
			wantErr:  true,
		},
		{
			name:     "invalid credentials",
			email:    "a@b.com",
			password: "Wrong1234",
			setupMocks: func(c *MockCredentialVerifier, p *MockEventPublisher, m *MockAuthMetrics) {
				c.On("VerifyCredentials", ctx, "a@b.com", "Wrong1234").
					Return(nil, util.Unauthorized("Invalid email or password", errors.New("wrong password")))
				m.On("LoginAttempt", "invalid_credentials", "web").Once()
				p.On("Publish", ctx, eventOfType(model.SessionLoginFailed)).Return(nil)
			},
			wantKind: util.KindUnauthorized,
			wantErr:  true,
		},
		{
			name:     "database down",
			email:    "a@b.com",
			password: "Secure123",
			setupMocks: func(c *MockCredentialVerifier, p *MockEventPublisher, m *MockAuthMetrics) {
				c.On("VerifyCredentials", ctx, "a@b.com", "Secure123").
					Return(nil, util.ServiceUnavailable("Service temporarily unavailable", nil))
				m.On("LoginAttempt", "error", "web").Once()
			},
			wantKind: util.KindServiceUnavailable,
			wantErr:  true,
		},
		{
			name:     "success even if publishing fails",
			email:    "a@b.com",
			password: "Secure123",
			setupMocks: func(c *MockCredentialVerifier, p *MockEventPublisher, m *MockAuthMetrics) {
				c.On("VerifyCredentials", ctx, "a@b.com", "Secure123").Return(user, nil)
				m.On("LoginAttempt", "success", "web").Once()
				p.On("Publish", ctx, eventOfType(model.SessionLogin)).Return(errors.New("broker down"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			credentials := new(MockCredentialVerifier)
			publisher := new(MockEventPublisher)
			metrics := new(MockAuthMetrics)
			if tt.setupMocks != nil {
				tt.setupMocks(credentials, publisher, metrics)
			}

			jwtService := newJWTService()
			auth := service.NewAuthenticationService(credentials, jwtService, publisher, metrics)

			result, err := auth.Login(ctx, tt.email, tt.password, model.ClientWeb)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, util.KindOf(err))
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user, result.User)
				assert.Equal(t, int64(900), result.Tokens.ExpiresIn)

				_, err := jwtService.ValidateAs(result.Tokens.AccessToken, model.TokenTypeAccess)
				assert.NoError(t, err)
				_, err = jwtService.ValidateAs(result.Tokens.RefreshToken, model.TokenTypeRefresh)
				assert.NoError(t, err)
			}

			credentials.AssertExpectations(t)
			publisher.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}

func TestAuthenticationService_Login_SigningFailure(t *testing.T) {
	ctx := context.Background()
	credentials := new(MockCredentialVerifier)
	tokens := new(MockTokenIssuer)
	metrics := new(MockAuthMetrics)

	credentials.On("VerifyCredentials", ctx, "a@b.com", "Secure123").Return(&model.User{ID: 1, Email: "a@b.com"}, nil)
	tokens.On("IssuePair", int64(1), "a@b.com").Return(nil, security.ErrSigningFailed)
	metrics.On("LoginAttempt", "error", "native").Once()

	auth := service.NewAuthenticationService(credentials, tokens, new(MockEventPublisher), metrics)
	_, err := auth.Login(ctx, "a@b.com", "Secure123", model.ClientNative)

	assert.Equal(t, util.KindInternal, util.KindOf(err))
	assert.ErrorIs(t, err, security.ErrSigningFailed)
	metrics.AssertExpectations(t)
}

func TestAuthenticationService_Refresh(t *testing.T) {
	ctx := context.Background()
	jwtService := newJWTService()
	pair, err := jwtService.IssuePair(5, "r@b.com")
	require.NoError(t, err)

	tests := []struct {
		name        string
		token       string
		wantOutcome string
		wantMessage string
	}{
		{name: "missing token", token: "", wantOutcome: "bad_request", wantMessage: "Refresh token required"},
		{name: "access token in refresh slot", token: pair.AccessToken, wantOutcome: "invalid_token", wantMessage: "Invalid or expired refresh token"},
		{name: "garbage", token: "not.a.token", wantOutcome: "invalid_token", wantMessage: "Invalid or expired refresh token"},
		{name: "valid refresh token", token: pair.RefreshToken, wantOutcome: "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher := new(MockEventPublisher)
			metrics := new(MockAuthMetrics)
			metrics.On("RefreshAttempt", tt.wantOutcome, "web").Once()
			if tt.wantMessage == "" {
				publisher.On("Publish", ctx, eventOfType(model.SessionRefresh)).Return(nil)
			}

			auth := service.NewAuthenticationService(new(MockCredentialVerifier), jwtService, publisher, metrics)
			accessToken, expiresIn, err := auth.Refresh(ctx, tt.token, model.ClientWeb)

			if tt.wantMessage != "" {
				require.Error(t, err)
				var appErr *util.AppError
				require.ErrorAs(t, err, &appErr)
				assert.Equal(t, util.KindUnauthorized, appErr.Kind)
				assert.Equal(t, tt.wantMessage, appErr.Message)
				assert.Empty(t, accessToken)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(900), expiresIn)
				claims, err := jwtService.ValidateAs(accessToken, model.TokenTypeAccess)
				require.NoError(t, err)
				assert.Equal(t, "5", claims.Subject)
				assert.Equal(t, "r@b.com", claims.Email)
			}

			publisher.AssertExpectations(t)
			metrics.AssertExpectations(t)
		})
	}
}

func TestAuthenticationService_Logout(t *testing.T) {
	ctx := context.Background()
	jwtService := newJWTService()
	pair, err := jwtService.IssuePair(9, "l@b.com")
	require.NoError(t, err)

	t.Run("with valid access token", func(t *testing.T) {
		publisher := new(MockEventPublisher)
		metrics := new(MockAuthMetrics)
		metrics.On("Logout", "web").Once()
		publisher.On("Publish", ctx, mock.MatchedBy(func(e *model.SessionEvent) bool {
			return e.Type == model.SessionLogout && e.UserID == 9 && e.TokenID != "" && !e.OccurredAt.IsZero()
		})).Return(nil)

		auth := service.NewAuthenticationService(new(MockCredentialVerifier), jwtService, publisher, metrics)
		auth.Logout(ctx, pair.AccessToken, model.ClientWeb)

		publisher.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("without token", func(t *testing.T) {
		publisher := new(MockEventPublisher)
		metrics := new(MockAuthMetrics)
		metrics.On("Logout", "native").Once()
		publisher.On("Publish", ctx, mock.MatchedBy(func(e *model.SessionEvent) bool {
			return e.Type == model.SessionLogout && e.UserID == 0
		})).Return(nil)

		auth := service.NewAuthenticationService(new(MockCredentialVerifier), jwtService, publisher, metrics)
		auth.Logout(ctx, "", model.ClientNative)

		publisher.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})
}
