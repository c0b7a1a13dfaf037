package seed

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories/memstore"
	"github.com/yigit/unifms/internal/app/services"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
	"golang.org/x/crypto/bcrypt"
)

func TestRunSeedsRolesAndAdminOnce(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	users := services.NewUserService(store, pkgauth.NewPasswordHasher(bcrypt.MinCost))
	admin := Admin{Username: "admin", Email: "admin@university.edu", Password: "changeme"}

	require.NoError(t, Run(ctx, store, users, admin, zerolog.Nop()))
	require.NoError(t, Run(ctx, store, users, admin, zerolog.Nop()))

	roles, err := store.Roles().List(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(models.AllRoles))

	all, err := store.Users().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].HasRole(models.RoleAdmin))
}

func TestDefaultAdminSkippedWithoutPassword(t *testing.T) {
	ctx := context.Background()
	store := memstore.NewWithRoles()
	users := services.NewUserService(store, pkgauth.NewPasswordHasher(bcrypt.MinCost))

	require.NoError(t, DefaultAdmin(ctx, store, users, Admin{Username: "admin", Email: "a@b.edu"}, zerolog.Nop()))

	all, err := store.Users().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
