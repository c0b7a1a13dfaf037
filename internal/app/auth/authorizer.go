package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/unifms/internal/app/repositories"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
	"github.com/yigit/unifms/internal/pkg/logger"
)

// TokenValidator verifies a signed token
type TokenValidator interface {
	ValidateToken(token string) (*pkgauth.Claims, error)
}

// Authorizer turns bearer tokens into principals and evaluates predicates
type Authorizer struct {
	tokens TokenValidator
}

// NewAuthorizer creates a new Authorizer
func NewAuthorizer(tokens TokenValidator) *Authorizer {
	return &Authorizer{tokens: tokens}
}

// Authenticate verifies signature and expiry. It never performs I/O.
func (a *Authorizer) Authenticate(token string) (*Principal, error) {
	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthenticatedError(err)
	}
	return PrincipalFromClaims(claims), nil
}

// Authorize authenticates token and evaluates pred for the target resource id.
func (a *Authorizer) Authorize(ctx context.Context, token string, pred Predicate, target string) (*Principal, error) {
	principal, err := a.Authenticate(token)
	if err != nil {
		return nil, err
	}
	if err := Check(ctx, principal, pred, target); err != nil {
		return principal, err
	}
	return principal, nil
}

// Check evaluates pred. A denial is a Forbidden error; other errors come from owner lookups.
//
// Owner lookups run only when no role branch allowed, and a lookup that finds nothing is
// reported exactly like an ownership mismatch.
func Check(ctx context.Context, p *Principal, pred Predicate, target string) error {
	allowed, err := evaluate(ctx, p, pred, target)
	if err != nil {
		return err
	}
	if !allowed {
		logger.Ctx(ctx).Debug().
			Int64("userID", p.UserID).
			Str("predicate", pred.String()).
			Str("target", target).
			Msg("Access denied")
		return apperrors.NewForbiddenError("You do not have permission to perform this action")
	}
	return nil
}

func evaluate(ctx context.Context, p *Principal, pred Predicate, target string) (bool, error) {
	switch pred.kind {
	case kindAuthenticated:
		return true, nil
	case kindAnyOf:
		return p.HasAnyRole(pred.roles...), nil
	case kindOwner:
		owner, err := pred.lookup(ctx, target)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) || errors.Is(err, apperrors.ErrNotFound) {
				return false, nil
			}
			return false, fmt.Errorf("owner lookup failed: %w", err)
		}
		return owner == p.UserID, nil
	case kindOr:
		for _, b := range pred.anyOf {
			if b.needsLookup() {
				continue
			}
			if ok, err := evaluate(ctx, p, b, target); err != nil || ok {
				return ok, err
			}
		}
		for _, b := range pred.anyOf {
			if !b.needsLookup() {
				continue
			}
			if ok, err := evaluate(ctx, p, b, target); err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("unknown predicate kind %d", pred.kind)
}
