package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/unifms/internal/app/repositories/memstore"
	"github.com/yigit/unifms/internal/config"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code  string `json:"code"`
		Field string `json:"field"`
	} `json:"error"`
}

type apiFixture struct {
	t      *testing.T
	router *gin.Engine
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Database.Driver = config.DriverMemory
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"
	cfg.JWT.Issuer = "unifms"
	cfg.Security.BcryptCost = bcrypt.MinCost
	cfg.Seed.AdminUsername = "admin"
	cfg.Seed.AdminEmail = "admin@university.edu"
	cfg.Seed.AdminPassword = "admin-pass"
	cfg.Metrics.Enabled = true
	cfg.Metrics.Path = "/metrics"
	return cfg
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	deps := BuildDependencies(testConfig(), memstore.NewWithRoles(), zerolog.Nop())
	require.NoError(t, Seed(context.Background(), deps))

	router, err := SetupRouter(deps)
	require.NoError(t, err)
	return &apiFixture{t: t, router: router}
}

func (f *apiFixture) do(method, path, token string, body interface{}) (int, envelope) {
	f.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(f.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Header().Get("Content-Type") != "" && bytes.HasPrefix(rec.Body.Bytes(), []byte("{")) {
		require.NoError(f.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func (f *apiFixture) login(username, password string) string {
	f.t.Helper()
	code, env := f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": username, "password": password})
	require.Equal(f.t, http.StatusOK, code, env.Message)

	var out struct {
		Token string   `json:"token"`
		Type  string   `json:"type"`
		Roles []string `json:"roles"`
	}
	require.NoError(f.t, json.Unmarshal(env.Data, &out))
	require.Equal(f.t, "Bearer", out.Type)
	return out.Token
}

// register creates a student through self-registration and returns its id and token
func (f *apiFixture) register(username string) (int64, string) {
	f.t.Helper()
	code, env := f.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": username,
		"email":    username + "@university.edu",
		"password": "student-pass",
	})
	require.Equal(f.t, http.StatusCreated, code, env.Message)

	var u struct {
		ID    int64    `json:"id"`
		Roles []string `json:"roles"`
	}
	require.NoError(f.t, json.Unmarshal(env.Data, &u))
	require.Equal(f.t, []string{"STUDENT"}, u.Roles)
	return u.ID, f.login(username, "student-pass")
}

func dataID(t *testing.T, env envelope) int64 {
	t.Helper()
	var v struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &v))
	return v.ID
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)
	code, env := f.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Success)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	f := newAPIFixture(t)

	code1, wrongPassword := f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "admin", "password": "nope"})
	code2, unknownUser := f.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "ghost", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, code1)
	assert.Equal(t, code1, code2)
	assert.Equal(t, wrongPassword.Message, unknownUser.Message)
	assert.Equal(t, "AUTH_001", unknownUser.Error.Code)
	assert.Equal(t, "null", string(unknownUser.Data))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t)

	code, env := f.do(http.MethodGet, "/api/v1/departments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	code, _ = f.do(http.MethodGet, "/api/v1/departments", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestDepartmentLifecycleAndStatusPolicy(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.login("admin", "admin-pass")
	_, student := f.register("stud1")

	code, _ := f.do(http.MethodPost, "/api/v1/departments", student, gin.H{"name": "Physics"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env := f.do(http.MethodPost, "/api/v1/departments", admin, gin.H{"name": "Physics"})
	require.Equal(t, http.StatusCreated, code)
	id := dataID(t, env)

	code, env = f.do(http.MethodPost, "/api/v1/departments", admin, gin.H{"name": "Physics"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "name", env.Error.Field)

	code, _ = f.do(http.MethodGet, "/api/v1/departments/"+strconv.FormatInt(id, 10), student, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = f.do(http.MethodPut, "/api/v1/departments/999", admin, gin.H{"name": "Chemistry"})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(http.MethodGet, "/api/v1/departments/abc", admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(http.MethodPost, "/api/v1/departments", admin, gin.H{"description": "no name"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCourseWithUnknownDepartmentIsBadRequest(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.login("admin", "admin-pass")

	code, env := f.do(http.MethodPost, "/api/v1/courses", admin, gin.H{
		"name": "Algorithms", "code": "CS301", "credits": 4, "departmentId": 42,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "RES_003", env.Error.Code)

	code, env = f.do(http.MethodGet, "/api/v1/courses", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestUserOwnerAccess(t *testing.T) {
	f := newAPIFixture(t)
	aliceID, alice := f.register("alice")
	bobID, _ := f.register("bob")

	code, _ := f.do(http.MethodGet, "/api/v1/users/"+strconv.FormatInt(aliceID, 10), alice, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = f.do(http.MethodGet, "/api/v1/users/"+strconv.FormatInt(bobID, 10), alice, nil)
	assert.Equal(t, http.StatusForbidden, code)

	// a missing user looks the same as someone else's
	code, _ = f.do(http.MethodGet, "/api/v1/users/9999", alice, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = f.do(http.MethodPut, "/api/v1/users/"+strconv.FormatInt(aliceID, 10), alice, gin.H{
		"username": "alice", "email": "alice@university.edu", "roles": []string{"ADMIN"},
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, env := f.do(http.MethodPut, "/api/v1/users/"+strconv.FormatInt(aliceID, 10), alice, gin.H{
		"username": "alice", "email": "alice.new@university.edu",
	})
	require.Equal(t, http.StatusOK, code, env.Message)

	// a rename keeps the old token working on the account it was issued for
	code, env = f.do(http.MethodPut, "/api/v1/users/"+strconv.FormatInt(aliceID, 10), alice, gin.H{
		"username": "alicia", "email": "alice.new@university.edu",
	})
	require.Equal(t, http.StatusOK, code, env.Message)
	code, _ = f.do(http.MethodGet, "/api/v1/users/"+strconv.FormatInt(aliceID, 10), alice, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = f.do(http.MethodGet, "/api/v1/users", alice, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestRegisterValidation(t *testing.T) {
	f := newAPIFixture(t)

	code, env := f.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "carol", "email": "not-an-email", "password": "student-pass",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, "email", env.Error.Field)

	code, env = f.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "carol", "email": "carol@university.edu", "password": strings.Repeat("p", 80),
	})
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VAL_001", env.Error.Code)
	assert.Equal(t, "password", env.Error.Field)
}

func TestAdminCannotClearRoles(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.login("admin", "admin-pass")

	code, env := f.do(http.MethodPost, "/api/v1/users", admin, gin.H{
		"username": "hank", "email": "hank@university.edu", "password": "hank-pass", "roles": []string{"HR"},
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	user := "/api/v1/users/" + strconv.FormatInt(dataID(t, env), 10)

	code, env = f.do(http.MethodPut, user, admin, gin.H{
		"username": "hank", "email": "hank@university.edu", "roles": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VAL_001", env.Error.Code)

	code, env = f.do(http.MethodGet, user, admin, nil)
	require.Equal(t, http.StatusOK, code)
	var u struct {
		Roles []string `json:"roles"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, []string{"HR"}, u.Roles)
}

func TestEnrollmentFlow(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.login("admin", "admin-pass")
	studentID, student := f.register("dave")

	code, env := f.do(http.MethodPost, "/api/v1/courses", admin, gin.H{"name": "Databases", "code": "CS340", "credits": 3})
	require.Equal(t, http.StatusCreated, code)
	course := "/api/v1/courses/" + strconv.FormatInt(dataID(t, env), 10)

	key := gin.H{"studentId": studentID, "semester": "fall", "year": 2025}
	code, _ = f.do(http.MethodPost, course+"/enrollments", admin, key)
	require.Equal(t, http.StatusCreated, code)

	code, _ = f.do(http.MethodPost, course+"/enrollments", admin, key)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = f.do(http.MethodPost, course+"/enrollments", admin, gin.H{"studentId": studentID, "semester": "20!5", "year": 2025})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = f.do(http.MethodGet, course+"/enrollments/count", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))

	code, env = f.do(http.MethodGet, course+"/enrollments?semester=FALL&year=2025", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "FALL", rows[0]["semester"])

	code, _ = f.do(http.MethodGet, course+"/enrollments", student, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = f.do(http.MethodGet, "/api/v1/users/"+strconv.FormatInt(studentID, 10)+"/enrollments", student, nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)

	code, _ = f.do(http.MethodDelete, course+"/enrollments", admin, key)
	assert.Equal(t, http.StatusOK, code)
	code, _ = f.do(http.MethodDelete, course+"/enrollments", admin, key)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newAPIFixture(t)
	f.do(http.MethodGet, "/api/v1/health", "", nil)

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/health"`)
}

func TestSessionRoutes(t *testing.T) {
	f := newAPIFixture(t)
	studentID, student := f.register("dana")

	code, env := f.do(http.MethodGet, "/api/v1/auth/me", student, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, studentID, dataID(t, env))

	code, _ = f.do(http.MethodGet, "/api/v1/roles", student, nil)
	assert.Equal(t, http.StatusForbidden, code)

	admin := f.login("admin", "admin-pass")
	code, env = f.do(http.MethodGet, "/api/v1/roles", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var roles []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &roles))
	assert.Len(t, roles, 4)

	code, _ = f.do(http.MethodPost, "/api/v1/auth/logout", student, nil)
	assert.Equal(t, http.StatusOK, code)

	// Tokens are stateless and remain valid until expiry.
	code, _ = f.do(http.MethodGet, "/api/v1/auth/me", student, nil)
	assert.Equal(t, http.StatusOK, code)
}
