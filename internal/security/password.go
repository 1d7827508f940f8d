package security

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"session-security/config"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

const argon2Version = argon2.Version

var (
	ErrPasswordTooShort             = errors.New("password is too short")
	ErrPasswordTooLong              = errors.New("password is too long")
	ErrPasswordMissingLetterOrDigit = errors.New("password must contain at least one letter and one digit")
	ErrHashingFailed                = errors.New("password hashing failed")
	ErrVerificationFailed           = errors.New("password verification failed")
)

type argon2Params struct {
	memoryKiB   uint32
	iterations  uint32
	parallelism uint8
	saltLength  uint32
	keyLength   uint32
}

// PasswordHasher хэширует пароли Argon2id и проверяет как PHC строки, так и старые bcrypt хэши
type PasswordHasher struct {
	params    argon2Params
	minLength int
	maxLength int
}

func NewPasswordHasher(cfg *config.PasswordConfig) (*PasswordHasher, error) {
	if cfg.MemoryKiB == 0 || cfg.Iterations == 0 || cfg.Parallelism == 0 {
		return nil, fmt.Errorf("параметры argon2 должны быть положительными")
	}
	if cfg.SaltLength < 8 || cfg.KeyLength < 16 {
		return nil, fmt.Errorf("соль не короче 8 байт, ключ не короче 16 байт")
	}
	if cfg.MinLength <= 0 || cfg.MaxLength < cfg.MinLength {
		return nil, fmt.Errorf("некорректные границы длины пароля: %d..%d", cfg.MinLength, cfg.MaxLength)
	}

	return &PasswordHasher{
		params: argon2Params{
			memoryKiB:   cfg.MemoryKiB,
			iterations:  cfg.Iterations,
			parallelism: cfg.Parallelism,
			saltLength:  cfg.SaltLength,
			keyLength:   cfg.KeyLength,
		},
		minLength: cfg.MinLength,
		maxLength: cfg.MaxLength,
	}, nil
}

// ValidatePolicy проверяет длину в байтах, затем состав пароля
func (h *PasswordHasher) ValidatePolicy(password string) error {
	if len(password) < h.minLength {
		return ErrPasswordTooShort
	}
	if len(password) > h.maxLength {
		return ErrPasswordTooLong
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return ErrPasswordMissingLetterOrDigit
	}

	return nil
}

// Hash возвращает строку вида $argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt>$<hash>.
// Соль новая при каждом вызове
func (h *PasswordHasher) Hash(password string) (string, error) {
	if err := h.ValidatePolicy(password); err != nil {
		return "", err
	}

	salt := make([]byte, h.params.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: salt: %v", ErrHashingFailed, err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.iterations, h.params.memoryKiB, h.params.parallelism, h.params.keyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version,
		h.params.memoryKiB,
		h.params.iterations,
		h.params.parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

// Verify : (true, nil) при совпадении, (false, nil) при неверном пароле,
// ErrVerificationFailed если хэш испорчен или не поддерживается
func (h *PasswordHasher) Verify(password, encodedHash string) (bool, error) {
	if isBcryptHash(encodedHash) {
		err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("%w: bcrypt: %v", ErrVerificationFailed, err)
		}
	}

	params, salt, expected, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return false, err
	}

	// параметры из хранимой строки не должны сильно превышать настроенные
	if !h.withinBounds(params) {
		return false, fmt.Errorf("%w: parameters out of bounds", ErrVerificationFailed)
	}

	key := argon2.IDKey([]byte(password), salt, params.iterations, params.memoryKiB, params.parallelism, params.keyLength)

	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}

// NeedsRehash сообщает, что хэш стоит пересчитать текущими параметрами
func (h *PasswordHasher) NeedsRehash(encodedHash string) bool {
	if isBcryptHash(encodedHash) {
		return true
	}

	params, _, _, err := decodeArgon2Hash(encodedHash)
	if err != nil {
		return true
	}

	return params.memoryKiB != h.params.memoryKiB ||
		params.iterations != h.params.iterations ||
		params.parallelism != h.params.parallelism ||
		params.keyLength != h.params.keyLength
}

func (h *PasswordHasher) withinBounds(got argon2Params) bool {
	if got.memoryKiB > h.params.memoryKiB*2 {
		return false
	}
	if got.iterations > h.params.iterations*2 {
		return false
	}
	if uint32(got.parallelism) > uint32(h.params.parallelism)*2 {
		return false
	}
	if got.saltLength < 8 || got.saltLength > 64 {
		return false
	}
	if got.keyLength < 16 || got.keyLength > 128 {
		return false
	}
	return true
}

func isBcryptHash(encoded string) bool {
	return strings.HasPrefix(encoded, "$2a$") ||
		strings.HasPrefix(encoded, "$2b$") ||
		strings.HasPrefix(encoded, "$2y$")
}

func decodeArgon2Hash(encoded string) (argon2Params, []byte, []byte, error) {
	invalid := func(reason string) (argon2Params, []byte, []byte, error) {
		return argon2Params{}, nil, nil, fmt.Errorf("%w: %s", ErrVerificationFailed, reason)
	}

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return invalid("unsupported hash format")
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2Version) {
		return invalid("unsupported argon2 version")
	}

	var mem, iter, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iter, &par); err != nil {
		return invalid("bad parameters")
	}
	if mem == 0 || iter == 0 || par == 0 || par > 255 {
		return invalid("bad parameters")
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil {
		return invalid("bad salt encoding")
	}
	hash, err := b64.DecodeString(parts[5])
	if err != nil {
		return invalid("bad hash encoding")
	}

	return argon2Params{
		memoryKiB:   mem,
		iterations:  iter,
		parallelism: uint8(par),
		saltLength:  uint32(len(salt)),
		keyLength:   uint32(len(hash)),
	}, salt, hash, nil
}
