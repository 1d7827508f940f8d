package security

import (
	"strings"
	"testing"

	"session-security/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *PasswordHasher {
	t.Helper()
	h, err := NewPasswordHasher(&config.PasswordConfig{
		MemoryKiB:   1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
		MinLength:   8,
		MaxLength:   128,
	})
	require.NoError(t, err)
	return h
}

func TestPasswordHasher_Policy(t *testing.T) {
	h := newTestHasher(t)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"seven chars", "Short12", ErrPasswordTooShort},
		{"no digit", "alllettersnodigit", ErrPasswordMissingLetterOrDigit},
		{"no letter", "1234567890", ErrPasswordMissingLetterOrDigit},
		{"too long", strings.Repeat("a1", 65), ErrPasswordTooLong},
		{"exact minimum", "abcdefg1", nil},
		{"exact maximum", strings.Repeat("a", 127) + "1", nil},
		{"valid", "Valid123", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Hash(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPasswordHasher_HashIsSaltedAndVerifies(t *testing.T) {
	h := newTestHasher(t)

	first, err := h.Hash("Secure123")
	require.NoError(t, err)
	second, err := h.Hash("Secure123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, strings.HasPrefix(first, "$argon2id$v=19$m=1024,t=1,p=1$"))

	for _, stored := range []string{first, second} {
		ok, err := h.Verify("Secure123", stored)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestPasswordHasher_WrongPasswordIsNotAnError(t *testing.T) {
	h := newTestHasher(t)

	stored, err := h.Hash("Secure123")
	require.NoError(t, err)

	ok, err := h.Verify("Secure124", stored)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := newTestHasher(t)

	for _, stored := range []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdHNhbHQ$aGFzaGhhc2g",
		"$argon2id$v=16$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA",
		"$argon2id$v=19$m=x,t=1,p=1$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaGhhc2hoYXNoaGFzaA",
	} {
		_, err := h.Verify("Secure123", stored)
		assert.ErrorIs(t, err, ErrVerificationFailed, stored)
	}
}

func TestPasswordHasher_RejectsOversizedParameters(t *testing.T) {
	h := newTestHasher(t)

	stored := "$argon2id$v=19$m=4194304,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$aGFzaGhhc2hoYXNoaGFzaGhhc2hoYXNoaGFzaA"
	_, err := h.Verify("Secure123", stored)
	assert.ErrorIs(t, err, ErrVerificationFailed)
}

func TestPasswordHasher_LegacyBcrypt(t *testing.T) {
	h := newTestHasher(t)

	legacy, err := bcrypt.GenerateFromPassword([]byte("Secure123"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := h.Verify("Secure123", string(legacy))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong-pass1", string(legacy))
	require.NoError(t, err)
	assert.False(t, ok)

	assert.True(t, h.NeedsRehash(string(legacy)))
}

func TestPasswordHasher_NeedsRehash(t *testing.T) {
	h := newTestHasher(t)

	current, err := h.Hash("Secure123")
	require.NoError(t, err)
	assert.False(t, h.NeedsRehash(current))

	stronger, err := NewPasswordHasher(&config.PasswordConfig{
		MemoryKiB: 2048, Iterations: 2, Parallelism: 1, SaltLength: 16, KeyLength: 32, MinLength: 8, MaxLength: 128,
	})
	require.NoError(t, err)
	assert.True(t, stronger.NeedsRehash(current))

	ok, err := stronger.Verify("Secure123", current)
	require.NoError(t, err)
	assert.True(t, ok)
}
