package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/yigit/unifms/internal/app/auth"
	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
	"github.com/yigit/unifms/internal/pkg/logger"
)

// UserInput carries the fields of a new user. Nil or empty Roles means STUDENT.
type UserInput struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// UserUpdate carries the fields of a user update. A blank password keeps the stored
// hash and nil Roles keeps the current role set. An empty non-nil Roles is rejected.
type UserUpdate struct {
	Username string
	Email    string
	Password string
	Roles    []string
}

// UserService manages user accounts and their roles
type UserService struct {
	store  repositories.Store
	hasher *pkgauth.PasswordHasher
	integrity
}

// NewUserService creates a new UserService
func NewUserService(store repositories.Store, hasher *pkgauth.PasswordHasher) *UserService {
	return &UserService{store: store, hasher: hasher, integrity: integrity{store: store}}
}

func normalizeIdentity(username, email string) (string, string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	switch {
	case username == "":
		return "", "", apperrors.NewValidationError("username cannot be empty")
	case len(username) > 255:
		return "", "", apperrors.NewValidationError("username must be at most 255 characters")
	case email == "" || !strings.Contains(email, "@"):
		return "", "", apperrors.NewValidationError("email is invalid")
	case len(email) > 255:
		return "", "", apperrors.NewValidationError("email must be at most 255 characters")
	}
	return username, email, nil
}

// bcrypt refuses secrets longer than this
const maxPasswordBytes = 72

func validatePassword(password string) error {
	switch {
	case len(password) < 6:
		return apperrors.NewValidationError("password must be at least 6 characters")
	case len(password) > maxPasswordBytes:
		return apperrors.NewValidationError("password must be at most 72 bytes")
	}
	return nil
}

func identityFields(username, email string) []uniqueField {
	return []uniqueField{
		{
			field: "username",
			value: username,
			owner: ownerOf(func(ctx context.Context, tx repositories.Store) (*models.User, error) {
				return tx.Users().GetByUsername(ctx, username)
			}, func(u *models.User) int64 { return u.ID }),
		},
		{
			field: "email",
			value: email,
			owner: ownerOf(func(ctx context.Context, tx repositories.Store) (*models.User, error) {
				return tx.Users().GetByEmail(ctx, email)
			}, func(u *models.User) int64 { return u.ID }),
		},
	}
}

// resolveRoles maps every name to a role row. One unknown name fails the whole set.
func resolveRoles(ctx context.Context, tx repositories.Store, names []string) ([]models.Role, error) {
	roles := make([]models.Role, 0, len(names))
	seen := map[models.RoleName]bool{}
	for _, name := range names {
		roleName := models.RoleName(strings.ToUpper(strings.TrimSpace(name)))
		if seen[roleName] {
			continue
		}
		role, err := tx.Roles().GetByName(ctx, roleName)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, apperrors.NewUnknownRoleError(name)
			}
			return nil, err
		}
		seen[roleName] = true
		roles = append(roles, *role)
	}
	return roles, nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.store.Users().List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.store.Users().GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, kindUser, id)
	}
	return u, nil
}

// ListByRole returns the holders of a role
func (s *UserService) ListByRole(ctx context.Context, roleName string) ([]*models.User, error) {
	role, err := s.store.Roles().GetByName(ctx, models.RoleName(strings.ToUpper(strings.TrimSpace(roleName))))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NewUnknownRoleError(roleName)
		}
		return nil, err
	}
	return s.store.Users().ListByRole(ctx, role.Name)
}

// Create creates a user with a hashed password and resolved roles
func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	username, email, err := normalizeIdentity(in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, Email: email, Password: hash}
	err = s.run(ctx, mutation{
		kind:   kindUser,
		unique: identityFields(username, email),
		apply: func(ctx context.Context, tx repositories.Store) error {
			names := in.Roles
			if len(names) == 0 {
				names = []string{string(models.DefaultRole)}
			}
			roles, err := resolveRoles(ctx, tx, names)
			if err != nil {
				return err
			}
			user.Roles = roles
			return tx.Users().Create(ctx, user)
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("userID", user.ID).Strs("roles", user.RoleNames()).Msg("User created")
	return user, nil
}

// Update changes a user. Only admins may change roles.
func (s *UserService) Update(ctx context.Context, id int64, in UserUpdate) (*models.User, error) {
	username, email, err := normalizeIdentity(in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if in.Roles != nil {
		if actor, err := auth.PrincipalFrom(ctx); err == nil && !actor.IsAdmin() {
			return nil, apperrors.NewForbiddenError("only administrators can change roles")
		}
		if len(in.Roles) == 0 {
			return nil, apperrors.NewValidationError("roles cannot be empty; omit the field to keep the current roles")
		}
	}

	var hash string
	if in.Password != "" {
		if err := validatePassword(in.Password); err != nil {
			return nil, err
		}
		if hash, err = s.hasher.Hash(in.Password); err != nil {
			return nil, err
		}
	}

	var user *models.User
	err = s.run(ctx, mutation{
		kind:     kindUser,
		targetID: id,
		selfID:   id,
		target: func(ctx context.Context, tx repositories.Store) (err error) {
			user, err = tx.Users().GetByID(ctx, id)
			return err
		},
		unique: identityFields(username, email),
		apply: func(ctx context.Context, tx repositories.Store) error {
			if in.Roles != nil {
				roles, err := resolveRoles(ctx, tx, in.Roles)
				if err != nil {
					return err
				}
				user.Roles = roles
			}
			user.Username = username
			user.Email = email
			if hash != "" {
				user.Password = hash
			}
			return tx.Users().Update(ctx, user)
		},
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user with the faculty profile and enrollments it owns
func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.remove(ctx, kindUser, id, func(ctx context.Context, tx repositories.Store) error {
		return tx.Users().Delete(ctx, id)
	})
}

// OwnerID backs the owner predicate on /users/:id routes. A user record is owned by
// the user it describes, so no lookup is needed.
func (s *UserService) OwnerID(_ context.Context, target string) (int64, error) {
	id, err := strconv.ParseInt(target, 10, 64)
	if err != nil || id <= 0 {
		return 0, repositories.ErrNotFound
	}
	return id, nil
}
