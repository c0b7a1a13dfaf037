package auth

import (
	"context"
	"strings"

	"github.com/yigit/unifms/internal/app/models"
)

// OwnerLookup resolves the id of the user owning the target resource
type OwnerLookup func(ctx context.Context, target string) (int64, error)

type predicateKind int

const (
	kindAuthenticated predicateKind = iota
	kindAnyOf
	kindOwner
	kindOr
)

// Predicate is a declarative access rule. Build predicates with Authenticated,
// AnyOf, AdminOnly, Owner and Or.
type Predicate struct {
	kind   predicateKind
	roles  []models.RoleName
	lookup OwnerLookup
	anyOf  []Predicate
}

// Authenticated allows any valid token
func Authenticated() Predicate {
	return Predicate{kind: kindAuthenticated}
}

// AnyOf allows principals holding at least one of roles
func AnyOf(roles ...models.RoleName) Predicate {
	return Predicate{kind: kindAnyOf, roles: roles}
}

// AdminOnly allows ADMIN principals
func AdminOnly() Predicate {
	return AnyOf(models.RoleAdmin)
}

// Owner allows the principal whose user id owns the target resource
func Owner(lookup OwnerLookup) Predicate {
	return Predicate{kind: kindOwner, lookup: lookup}
}

// Or allows when any branch allows. Role branches are evaluated before owner branches.
func Or(branches ...Predicate) Predicate {
	return Predicate{kind: kindOr, anyOf: branches}
}

// needsLookup reports whether evaluation may touch domain data
func (p Predicate) needsLookup() bool {
	switch p.kind {
	case kindOwner:
		return true
	case kindOr:
		for _, b := range p.anyOf {
			if b.needsLookup() {
				return true
			}
		}
	}
	return false
}

func (p Predicate) String() string {
	switch p.kind {
	case kindAuthenticated:
		return "authenticated"
	case kindAnyOf:
		names := make([]string, len(p.roles))
		for i, r := range p.roles {
			names[i] = string(r)
		}
		return "anyOf(" + strings.Join(names, ",") + ")"
	case kindOwner:
		return "owner"
	case kindOr:
		parts := make([]string, len(p.anyOf))
		for i, b := range p.anyOf {
			parts[i] = b.String()
		}
		return strings.Join(parts, " or ")
	}
	return "unknown"
}
