package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"session-security/internal/model"
	"session-security/internal/ports"
	"session-security/internal/repository"
	"session-security/internal/security"
	"session-security/internal/util"
)

const (
	invalidCredentialsMessage = "Invalid email or password"
	maxNameLength             = 100
	dummyPassword             = "timing-equalizer-0"
)

type UserService struct {
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
	cache          ports.ProfileCache
	publisher      ports.EventPublisher
	dummyHash      string
	now            func() time.Time
}

// NewUserService заранее считает хэш-заглушку: проверка несуществующего
// пользователя занимает столько же времени, сколько проверка реального
func NewUserService(
	userRepository ports.UserRepository,
	hasher ports.PasswordHasher,
	cache ports.ProfileCache,
	publisher ports.EventPublisher,
) (*UserService, error) {
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("[UserService] не удалось подготовить хэш-заглушку: %w", err)
	}

	return &UserService{
		userRepository: userRepository,
		hasher:         hasher,
		cache:          cache,
		publisher:      publisher,
		dummyHash:      dummyHash,
		now:            time.Now,
	}, nil
}

// VerifyCredentials возвращает активного пользователя или Unauthorized с общим сообщением.
// Хэши со старыми параметрами пересчитываются после успешной проверки
func (s *UserService) VerifyCredentials(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepository.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			_, _ = s.hasher.Verify(password, s.dummyHash)
			return nil, util.Unauthorized(invalidCredentialsMessage, err)
		case errors.Is(err, repository.ErrDatabaseUnavailable):
			return nil, util.ServiceUnavailable("Service temporarily unavailable", err)
		default:
			return nil, util.Internal("Internal server error", err)
		}
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, util.Internal("Internal server error", fmt.Errorf("user %d: %w", user.ID, err))
	}
	if !ok {
		return nil, util.Unauthorized(invalidCredentialsMessage, fmt.Errorf("wrong password for user %d", user.ID))
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, password)
	}

	return user, nil
}

func (s *UserService) rehash(ctx context.Context, user *model.User, password string) {
	newHash, err := s.hasher.Hash(password)
	if err != nil {
		// старый пароль может не проходить текущую политику
		slog.Info("[UserService] хэш не пересчитан", "user_id", user.ID, "error", err)
		return
	}

	if err := s.userRepository.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
		slog.Warn("[UserService] не удалось сохранить новый хэш", "user_id", user.ID, "error", err)
		return
	}
	user.PasswordHash = newHash
}

// Register создаёт пользователя и публикует session.registration.
// Пароль проверяется политикой хэшера
func (s *UserService) Register(ctx context.Context, email, password, name string, client model.ClientKind) (*model.User, error) {
	email = normalizeEmail(email)
	if !isValidEmail(email) {
		return nil, util.BadRequest("Invalid email address", nil)
	}

	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > maxNameLength {
		return nil, util.BadRequest(fmt.Sprintf("Name must be at most %d characters", maxNameLength), nil)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, passwordError(err)
	}

	created, err := s.userRepository.CreateUser(ctx, &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserExists):
			return nil, util.Conflict("User with this email already exists", err)
		case errors.Is(err, repository.ErrDatabaseUnavailable):
			return nil, util.ServiceUnavailable("Service temporarily unavailable", err)
		default:
			return nil, util.Internal("Internal server error", err)
		}
	}

	publishSessionEvent(ctx, s.publisher, &model.SessionEvent{
		Type:       model.SessionRegistration,
		UserID:     created.ID,
		Email:      created.Email,
		ClientKind: client.String(),
	}, s.now())

	return created, nil
}

// Profile читает профиль из Redis, при промахе из БД с записью в кэш
func (s *UserService) Profile(ctx context.Context, userID int64) (*model.UserProfile, error) {
	cached, err := s.cache.GetProfile(ctx, userID)
	if err != nil {
		slog.Warn("[UserService] кэш профилей недоступен", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, util.NotFound("User not found", err)
		case errors.Is(err, repository.ErrDatabaseUnavailable):
			return nil, util.ServiceUnavailable("Service temporarily unavailable", err)
		default:
			return nil, util.Internal("Internal server error", err)
		}
	}

	profile := user.Profile()
	if err := s.cache.SetProfile(ctx, profile); err != nil && !errors.Is(err, repository.ErrCacheUnavailable) {
		slog.Warn("[UserService] профиль не сохранён в кэш", "user_id", userID, "error", err)
	}

	return profile, nil
}

func passwordError(err error) error {
	switch {
	case errors.Is(err, security.ErrPasswordTooShort):
		return util.BadRequest("Password is too short", err)
	case errors.Is(err, security.ErrPasswordTooLong):
		return util.BadRequest("Password is too long", err)
	case errors.Is(err, security.ErrPasswordMissingLetterOrDigit):
		return util.BadRequest("Password must contain at least one letter and one digit", err)
	default:
		return util.Internal("Internal server error", err)
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func isValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	return strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}
