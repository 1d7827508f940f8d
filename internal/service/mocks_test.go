package service_test

import (
	"context"
	"time"

	"session-security/config"
	"session-security/internal/model"
	"session-security/internal/security"

	"github.com/stretchr/testify/mock"
)

// ===== MOCKS =====

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProfileCache struct {
	mock.Mock
}

func (m *MockProfileCache) SetProfile(ctx context.Context, profile *model.UserProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

func (m *MockProfileCache) GetProfile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*model.UserProfile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProfileCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCredentialVerifier struct {
	mock.Mock
}

func (m *MockCredentialVerifier) VerifyCredentials(ctx context.Context, email, password string) (*model.User, error) {
	args := m.Called(ctx, email, password)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) IssuePair(userID int64, email string) (*model.TokenPair, error) {
	args := m.Called(userID, email)
	if p, ok := args.Get(0).(*model.TokenPair); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTokenIssuer) IssueAccessOnly(userID int64, email string) (string, error) {
	args := m.Called(userID, email)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) ValidateAs(tokenStr string, required model.TokenType) (*security.Claims, error) {
	args := m.Called(tokenStr, required)
	if c, ok := args.Get(0).(*security.Claims); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTokenIssuer) AccessTTL() time.Duration {
	return 15 * time.Minute
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event *model.SessionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockEventPublisher) Close() error {
	return nil
}

type MockAuthMetrics struct {
	mock.Mock
}

func (m *MockAuthMetrics) LoginAttempt(outcome, client string) {
	m.Called(outcome, client)
}

func (m *MockAuthMetrics) RefreshAttempt(outcome, client string) {
	m.Called(outcome, client)
}

func (m *MockAuthMetrics) Logout(client string) {
	m.Called(client)
}

// ===== HELPERS =====

func newJWTService() *security.JWTService {
	svc, err := security.NewJWTService(&config.JWTConfig{
		SecretKey:       "service-test-secret",
		AccessTokenTTL:  "15m",
		RefreshTokenTTL: "168h",
	})
	if err != nil {
		panic(err)
	}
	return svc
}

func newHasher() *security.PasswordHasher {
	h, err := security.NewPasswordHasher(&config.PasswordConfig{
		MemoryKiB:   1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
		MinLength:   8,
		MaxLength:   128,
	})
	if err != nil {
		panic(err)
	}
	return h
}

func eventOfType(eventType model.SessionEventType) interface{} {
	return mock.MatchedBy(func(e *model.SessionEvent) bool {
		return e.Type == eventType
	})
}
