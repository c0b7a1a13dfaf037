package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

func TestLogin_TokenCarriesStoredRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	stored := f.user(t, "hopper", "ADMIN", "FACULTY")

	result, err := f.svc.Auth.Login(ctx, "hopper", "secret123")
	require.NoError(t, err)
	assert.Equal(t, stored.ID, result.User.ID)
	assert.Positive(t, result.ExpiresIn)

	claims, err := f.jwt.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
	assert.Equal(t, "hopper", claims.Username)
	assert.Equal(t, "hopper@university.edu", claims.Email)
	assert.ElementsMatch(t, stored.RoleNames(), claims.Roles)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "lovelace")

	_, unknownErr := f.svc.Auth.Login(ctx, "babbage", "secret123")
	_, wrongErr := f.svc.Auth.Login(ctx, "lovelace", "wrong-password")

	require.ErrorIs(t, unknownErr, apperrors.ErrInvalidCredentials)
	require.ErrorIs(t, wrongErr, apperrors.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
}

func TestRegister_AlwaysStudent(t *testing.T) {
	f := newFixture(t)

	u, err := f.svc.Auth.Register(context.Background(), "newbie", "newbie@university.edu", "secret123")
	require.NoError(t, err)
	assert.Equal(t, []string{"STUDENT"}, u.RoleNames())

	me, err := f.svc.Auth.Me(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "newbie", me.Username)
}
