package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/app/auth"
	pkgauth "github.com/yigit/unifms/internal/pkg/auth"
)

func tokenFor(t *testing.T, ttl time.Duration) string {
	t.Helper()
	jwt := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "mw-secret", AccessTokenExp: ttl, TokenIssuer: "unifms"})
	token, _, err := jwt.GenerateToken(pkgauth.TokenSubject{UserID: 5, Username: "erin", Roles: []string{"STUDENT"}})
	require.NoError(t, err)
	return token
}

func TestJWTAuth_FailureCodes(t *testing.T) {
	jwt := pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "mw-secret", AccessTokenExp: time.Hour, TokenIssuer: "unifms"})
	m := NewAuthMiddleware(auth.NewAuthorizer(jwt))

	router := gin.New()
	router.GET("/me", m.JWTAuth(), func(c *gin.Context) {
		p, ok := Principal(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"username": p.Username})
	})

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"missing header", "", http.StatusUnauthorized, "AUTH_008"},
		{"malformed header", "Basic abc", http.StatusUnauthorized, "AUTH_005"},
		{"bad signature", "Bearer " + tokenFor(t, time.Hour)[:20] + ".x.y", http.StatusUnauthorized, "AUTH_005"},
		{"expired", "Bearer " + tokenFor(t, -time.Minute), http.StatusUnauthorized, "AUTH_006"},
		{"valid", "Bearer " + tokenFor(t, time.Hour), http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			if tt.code == "" {
				return
			}
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}
