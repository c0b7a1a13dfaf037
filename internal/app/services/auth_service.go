package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
	"github.com/yigit/unifms/internal/pkg/logger"
)

// TokenIssuer signs access tokens
type TokenIssuer interface {
	GenerateToken(subject pkgauth.TokenSubject) (string, int64, error)
}

// LoginResult is a successful authentication
type LoginResult struct {
	Token     string
	ExpiresIn int64
	User      *models.User
}

// AuthService verifies credentials and issues tokens
type AuthService struct {
	store  repositories.Store
	users  *UserService
	hasher *pkgauth.PasswordHasher
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(store repositories.Store, users *UserService, hasher *pkgauth.PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{store: store, users: users, hasher: hasher, tokens: tokens}
}

// Login authenticates username and password. An unknown username and a wrong password
// fail with the same error after the same amount of hashing work.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	log := logger.Ctx(ctx)

	user, err := s.store.Users().GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to load user: %w", err)
		}
		s.hasher.CompareDummy(password)
		log.Info().Msg("Login failed")
		return nil, invalidCredentials()
	}

	if !s.hasher.Compare(user.Password, password) {
		log.Info().Int64("userID", user.ID).Msg("Login failed")
		return nil, invalidCredentials()
	}

	token, expiresIn, err := s.tokens.GenerateToken(pkgauth.TokenSubject{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.RoleNames(),
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int64("userID", user.ID).Msg("Login succeeded")
	return &LoginResult{Token: token, ExpiresIn: expiresIn, User: user}, nil
}

func invalidCredentials() error {
	return apperrors.NewCustomError(apperrors.ErrInvalidCredentials, "Invalid username or password").
		WithCode(apperrors.CodeInvalidCredentials)
}

// Register creates a self-service account. Self-registered users are always students.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	return s.users.Create(ctx, UserInput{
		Username: username,
		Email:    email,
		Password: password,
		Roles:    []string{string(models.RoleStudent)},
	})
}

// Me returns the current account
func (s *AuthService) Me(ctx context.Context, userID int64) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
