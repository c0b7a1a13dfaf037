package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestJWT(now time.Time) *JWTService {
	s := NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "unifms.test",
	})
	s.now = func() time.Time { return now }
	return s
}

func TestGenerateAndValidateToken(t *testing.T) {
	s := newTestJWT(time.Now())

	token, expiresIn, err := s.GenerateToken(TokenSubject{
		UserID:   42,
		Username: "ada",
		Email:    "ada@uni.edu",
		Roles:    []string{"ADMIN", "FACULTY"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), expiresIn)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "ada", claims.Username)
	assert.Equal(t, "ada@uni.edu", claims.Email)
	assert.Equal(t, []string{"ADMIN", "FACULTY"}, claims.Roles)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenExpired(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	token, _, err := newTestJWT(issuedAt).GenerateToken(TokenSubject{UserID: 1, Username: "a"})
	require.NoError(t, err)

	_, err = newTestJWT(time.Now()).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenWrongKey(t *testing.T) {
	token, _, err := newTestJWT(time.Now()).GenerateToken(TokenSubject{UserID: 1, Username: "a"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "unifms.test"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = other.ValidateToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ExtractBearerToken("bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	tok, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	_, err = ExtractBearerToken("Basic Zm9vOmJhcg==")
	assert.Error(t, err)
	_, err = ExtractBearerToken("")
	assert.Error(t, err)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)
	assert.True(t, h.Compare(hash, "s3cret!"))
	assert.False(t, h.Compare(hash, "wrong"))

	other, err := h.Hash("s3cret!")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other, "hashes must be salted")

	h.CompareDummy("anything")
}

func TestPasswordHasherRejectsLongSecrets(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("p", 80))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = h.Hash(strings.Repeat("p", 72))
	assert.NoError(t, err)
}
