package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", apperrors.NewNotFoundError("Course", 7), http.StatusNotFound},
		{"duplicate", apperrors.NewDuplicateKeyError("code", "CS101"), http.StatusConflict},
		{"validation", apperrors.NewValidationError("bad"), http.StatusBadRequest},
		{"reference", apperrors.NewReferenceNotFoundError("Department", 3), http.StatusBadRequest},
		{"unknown role", apperrors.NewUnknownRoleError("DEAN"), http.StatusBadRequest},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthenticated", apperrors.NewUnauthenticatedError(apperrors.ErrTokenExpired), http.StatusUnauthorized},
		{"forbidden", apperrors.NewForbiddenError("no"), http.StatusForbidden},
		{"wrapped", fmt.Errorf("loading: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"other", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func serveError(t *testing.T, err error) (int, map[string]interface{}) {
	t.Helper()
	router := gin.New()
	router.GET("/", func(c *gin.Context) { HandleAPIError(c, err) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestHandleAPIError_DuplicateCarriesField(t *testing.T) {
	status, body := serveError(t, apperrors.NewDuplicateKeyError("name", "Physics"))

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, false, body["success"])
	assert.Nil(t, body["data"])

	detail := body["error"].(map[string]interface{})
	assert.Equal(t, apperrors.CodeDuplicateKey, detail["code"])
	assert.Equal(t, "name", detail["field"])
	assert.Equal(t, "name 'Physics' already exists", detail["message"])
}

func TestHandleAPIError_HidesInternalErrors(t *testing.T) {
	status, body := serveError(t, errors.New("pq: relation does not exist"))

	assert.Equal(t, http.StatusInternalServerError, status)
	detail := body["error"].(map[string]interface{})
	assert.Equal(t, "SRV_001", detail["code"])
	assert.Equal(t, "Internal server error", detail["message"])
}

func TestHandleAPIError_PlainSentinel(t *testing.T) {
	status, body := serveError(t, apperrors.ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, status)
	detail := body["error"].(map[string]interface{})
	assert.Equal(t, apperrors.CodeUnauthenticated, detail["code"])
}

func TestRecoveryAnswersWithEnvelope(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SRV_001")
}
