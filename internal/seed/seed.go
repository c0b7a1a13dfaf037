// Package seed creates the reference roles and the bootstrap administrator.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/app/services"
)

// Admin describes the account created on first start
type Admin struct {
	Username string
	Email    string
	Password string
}

// Roles inserts any of models.AllRoles that are missing
func Roles(ctx context.Context, store repositories.Store, lgr zerolog.Logger) error {
	return store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		for _, name := range models.AllRoles {
			_, err := tx.Roles().GetByName(ctx, name)
			if err == nil {
				continue
			}
			if !errors.Is(err, repositories.ErrNotFound) {
				return fmt.Errorf("failed to look up role %s: %w", name, err)
			}
			if err := tx.Roles().Create(ctx, &models.Role{Name: name}); err != nil {
				return fmt.Errorf("failed to create role %s: %w", name, err)
			}
			lgr.Info().Str("role", string(name)).Msg("Created role")
		}
		return nil
	})
}

// DefaultAdmin creates the administrator unless an account with that username exists.
// It is skipped when no password is configured.
func DefaultAdmin(ctx context.Context, store repositories.Store, users *services.UserService, admin Admin, lgr zerolog.Logger) error {
	if admin.Password == "" {
		lgr.Warn().Msg("No seed admin password configured, skipping default admin")
		return nil
	}

	_, err := store.Users().GetByUsername(ctx, admin.Username)
	switch {
	case err == nil:
		lgr.Debug().Str("username", admin.Username).Msg("Default admin already exists")
		return nil
	case !errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	user, err := users.Create(ctx, services.UserInput{
		Username: admin.Username,
		Email:    admin.Email,
		Password: admin.Password,
		Roles:    []string{string(models.RoleAdmin)},
	})
	if err != nil {
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	lgr.Info().Int64("userId", user.ID).Str("username", user.Username).Msg("Created default admin")
	return nil
}

// Run seeds roles and then the administrator
func Run(ctx context.Context, store repositories.Store, users *services.UserService, admin Admin, lgr zerolog.Logger) error {
	if err := Roles(ctx, store, lgr); err != nil {
		return err
	}
	return DefaultAdmin(ctx, store, users, admin, lgr)
}
