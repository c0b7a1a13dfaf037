package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
)

func newJWT() *pkgauth.JWTService {
	return pkgauth.NewJWTService(pkgauth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "unifms-test",
	})
}

func issue(t *testing.T, jwt *pkgauth.JWTService, username string, roles ...string) string {
	t.Helper()
	return issueFor(t, jwt, 7, username, roles...)
}

func issueFor(t *testing.T, jwt *pkgauth.JWTService, userID int64, username string, roles ...string) string {
	t.Helper()
	token, _, err := jwt.GenerateToken(pkgauth.TokenSubject{
		UserID:   userID,
		Username: username,
		Email:    username + "@example.com",
		Roles:    roles,
	})
	require.NoError(t, err)
	return token
}

// ownerTable maps resource ids to owning user ids and counts lookups
type ownerTable struct {
	owners map[string]int64
	calls  int
}

func (o *ownerTable) lookup(_ context.Context, target string) (int64, error) {
	o.calls++
	owner, ok := o.owners[target]
	if !ok {
		return 0, repositories.ErrNotFound
	}
	return owner, nil
}

func TestAuthorize_InvalidTokenIsUnauthenticated(t *testing.T) {
	a := NewAuthorizer(newJWT())

	_, err := a.Authorize(context.Background(), "not-a-token", Authenticated(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	other := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "unifms-test"})
	_, err = a.Authorize(context.Background(), issue(t, other, "eve", "ADMIN"), AdminOnly(), "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestAuthorize_RolePredicates(t *testing.T) {
	jwt := newJWT()
	a := NewAuthorizer(jwt)
	ctx := context.Background()

	tests := []struct {
		name    string
		roles   []string
		pred    Predicate
		allowed bool
	}{
		{name: "admin only allows admin", roles: []string{"ADMIN"}, pred: AdminOnly(), allowed: true},
		{name: "admin only denies student", roles: []string{"STUDENT"}, pred: AdminOnly()},
		{name: "any of matches second role", roles: []string{"HR"}, pred: AnyOf(models.RoleAdmin, models.RoleHR), allowed: true},
		{name: "any of denies unrelated role", roles: []string{"FACULTY"}, pred: AnyOf(models.RoleAdmin, models.RoleHR)},
		{name: "authenticated allows no roles", pred: Authenticated(), allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := a.Authorize(ctx, issue(t, jwt, "user", tt.roles...), tt.pred, "")
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, "user", p.Username)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrForbidden)
		})
	}
}

func TestAuthorize_OwnerPredicate(t *testing.T) {
	jwt := newJWT()
	a := NewAuthorizer(jwt)
	ctx := context.Background()
	owners := &ownerTable{owners: map[string]int64{"1": 7, "2": 8}}
	pred := Or(Owner(owners.lookup), AdminOnly())

	_, err := a.Authorize(ctx, issue(t, jwt, "alice", "STUDENT"), pred, "1")
	require.NoError(t, err)

	_, err = a.Authorize(ctx, issue(t, jwt, "alice", "STUDENT"), pred, "2")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// A missing resource looks exactly like someone else's resource.
	_, missingErr := a.Authorize(ctx, issue(t, jwt, "alice", "STUDENT"), pred, "404")
	assert.ErrorIs(t, missingErr, apperrors.ErrForbidden)
	assert.Equal(t, err.Error(), missingErr.Error())
}

func TestAuthorize_OwnerMatchesUserIDNotUsername(t *testing.T) {
	jwt := newJWT()
	a := NewAuthorizer(jwt)
	owners := &ownerTable{owners: map[string]int64{"7": 7}}

	// the token predates a rename of user 7
	_, err := a.Authorize(context.Background(), issueFor(t, jwt, 7, "old-name", "STUDENT"), Owner(owners.lookup), "7")
	require.NoError(t, err)

	_, err = a.Authorize(context.Background(), issueFor(t, jwt, 8, "old-name", "STUDENT"), Owner(owners.lookup), "7")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthorize_RoleBranchesShortCircuitOwnerLookup(t *testing.T) {
	jwt := newJWT()
	a := NewAuthorizer(jwt)
	owners := &ownerTable{owners: map[string]string{}}

	_, err := a.Authorize(context.Background(), issue(t, jwt, "root", "ADMIN"), Or(Owner(owners.lookup), AdminOnly()), "99")
	require.NoError(t, err)
	assert.Zero(t, owners.calls)
}

func TestAuthorize_LookupFailurePropagates(t *testing.T) {
	jwt := newJWT()
	a := NewAuthorizer(jwt)
	boom := errors.New("connection reset")
	failing := func(context.Context, string) (int64, error) { return 0, boom }

	_, err := a.Authorize(context.Background(), issue(t, jwt, "alice", "STUDENT"), Owner(failing), "1")
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, apperrors.ErrForbidden)
}

func TestPrincipalContext(t *testing.T) {
	_, err := PrincipalFrom(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

	p := &Principal{UserID: 3, Username: "carol", Roles: []models.RoleName{models.RoleHR}}
	got, err := PrincipalFrom(WithPrincipal(context.Background(), p))
	require.NoError(t, err)
	assert.Same(t, p, got)
	assert.True(t, got.HasRole(models.RoleHR))
	assert.False(t, got.IsAdmin())
	assert.Equal(t, []string{"HR"}, got.RoleNames())
}

func TestPredicateString(t *testing.T) {
	pred := Or(AnyOf(models.RoleAdmin, models.RoleHR), Owner(nil))
	assert.Equal(t, "anyOf(ADMIN,HR) or owner", pred.String())
}
