package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/unifms/internal/app/auth"
	"github.com/yigit/unifms/internal/pkg/apperrors"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
)

const principalKey = "principal"

// AuthMiddleware authenticates bearer tokens and enforces access predicates
type AuthMiddleware struct {
	authorizer *auth.Authorizer
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(authorizer *auth.Authorizer) *AuthMiddleware {
	return &AuthMiddleware{authorizer: authorizer}
}

// JWTAuth validates the bearer token and stores the principal on the gin and request contexts
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if strings.TrimSpace(header) == "" {
			HandleAPIError(c, apperrors.NewUnauthenticatedError(nil))
			return
		}

		token, err := pkgauth.ExtractBearerToken(header)
		if err != nil {
			HandleAPIError(c, apperrors.NewUnauthenticatedError(err))
			return
		}

		principal, err := m.authorizer.Authenticate(token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(principalKey, principal)
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))
		c.Next()
	}
}

// Require checks pred against the authenticated principal. targetParam names the path
// parameter passed to owner predicates; it may be empty.
func (m *AuthMiddleware) Require(pred auth.Predicate, targetParam string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := Principal(c)
		if !ok {
			HandleAPIError(c, apperrors.NewUnauthenticatedError(nil))
			return
		}

		var target string
		if targetParam != "" {
			target = c.Param(targetParam)
		}

		if err := auth.Check(c.Request.Context(), principal, pred, target); err != nil {
			HandleAPIError(c, err)
			return
		}
		c.Next()
	}
}

// Principal returns the principal stored by JWTAuth
func Principal(c *gin.Context) (*auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok
}
