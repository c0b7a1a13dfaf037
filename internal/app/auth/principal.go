// Package auth decides whether an authenticated principal may perform a request.
//
// Routes declare a Predicate once when the router is built; the Authorizer evaluates
// it against the principal carried by the token.
package auth

import (
	"context"
	"slices"

	"github.com/yigit/unifms/internal/app/models"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
)

// Principal is the identity a verified token speaks for
type Principal struct {
	UserID   int64
	Username string
	Email    string
	Roles    []models.RoleName
}

// HasRole reports whether the principal holds role
func (p *Principal) HasRole(role models.RoleName) bool {
	return slices.Contains(p.Roles, role)
}

// HasAnyRole reports whether the principal holds at least one of roles
func (p *Principal) HasAnyRole(roles ...models.RoleName) bool {
	for _, r := range roles {
		if p.HasRole(r) {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for HasRole(models.RoleAdmin)
func (p *Principal) IsAdmin() bool {
	return p.HasRole(models.RoleAdmin)
}

// RoleNames returns the role names as strings
func (p *Principal) RoleNames() []string {
	names := make([]string, len(p.Roles))
	for i, r := range p.Roles {
		names[i] = string(r)
	}
	return names
}

// PrincipalFromClaims converts verified token claims
func PrincipalFromClaims(claims *pkgauth.Claims) *Principal {
	roles := make([]models.RoleName, len(claims.Roles))
	for i, r := range claims.Roles {
		roles[i] = models.RoleName(r)
	}
	return &Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Email:    claims.Email,
		Roles:    roles,
	}
}

type contextKey string

const principalCtxKey = contextKey("unifms/auth/principal")

// WithPrincipal stores p on ctx
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey, p)
}

// PrincipalFrom retrieves the principal from ctx; errors if the request is anonymous.
func PrincipalFrom(ctx context.Context) (*Principal, error) {
	p, ok := ctx.Value(principalCtxKey).(*Principal)
	if !ok || p == nil {
		return nil, apperrors.NewUnauthenticatedError(nil)
	}
	return p, nil
}
