package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testArgon = Argon2Params{Time: 1, MemoryKiB: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestBcryptHasher(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("StrongPass123")
	require.NoError(t, err)
	require.NotEqual(t, "StrongPass123", hash)
	require.True(t, strings.HasPrefix(hash, "$2"))

	ok, err := h.Verify("StrongPass123", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("WrongPass123", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	hash, err := BcryptHasher{}.Hash("StrongPass123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, 10, cost)
}

func TestArgon2Hasher(t *testing.T) {
	h := Argon2Hasher{Params: testArgon}

	hash, err := h.Hash("StrongPass123")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "argon2id$v=19$"))

	ok, err := h.Verify("StrongPass123", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify("WrongPass123", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHash_SaltsDiffer(t *testing.T) {
	a, err := HashPassword("same-password", testArgon)
	require.NoError(t, err)
	b, err := HashPassword("same-password", testArgon)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestHash_EmptyPassword(t *testing.T) {
	_, err := BcryptHasher{}.Hash("")
	require.Error(t, err)
	_, err = HashPassword("", testArgon)
	require.Error(t, err)
}

func TestVerifyPassword_CrossHasher(t *testing.T) {
	argonHash, err := HashPassword("StrongPass123", testArgon)
	require.NoError(t, err)

	ok, err := BcryptHasher{}.Verify("StrongPass123", argonHash)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyPassword_InvalidFormat(t *testing.T) {
	_, err := VerifyPassword("x", "plain-text")
	require.Error(t, err)

	_, err = VerifyPassword("x", "argon2id$v=19$bad$salt$hash")
	require.Error(t, err)
}

func TestNewPasswordHasher(t *testing.T) {
	h, err := NewPasswordHasher("bcrypt", 10, testArgon)
	require.NoError(t, err)
	require.IsType(t, BcryptHasher{}, h)

	h, err = NewPasswordHasher("argon2id", 0, testArgon)
	require.NoError(t, err)
	require.IsType(t, Argon2Hasher{}, h)

	_, err = NewPasswordHasher("md5", 0, testArgon)
	require.Error(t, err)
}
