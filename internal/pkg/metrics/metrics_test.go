package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequestsAndErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/items/:id", func(c *gin.Context) {
		if c.Param("id") == "missing" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/items/1", "/items/2", "/items/missing", "/nowhere"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `unifms_http_requests_total{method="GET",route="/items/:id",status="200"} 2`)
	assert.Contains(t, body, `unifms_http_errors_total{method="GET",route="/items/:id",status="404"} 1`)
	assert.Contains(t, body, `unifms_http_errors_total{method="GET",route="unmatched",status="404"} 1`)
	assert.NotContains(t, body, `unifms_http_errors_total{method="GET",route="/items/:id",status="200"}`)
}
