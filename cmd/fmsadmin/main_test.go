package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const memoryConfig = `
server:
  mode: test
database:
  driver: memory
jwt:
  secret: fmsadmin-test-secret
security:
  bcrypt_cost: 4
seed:
  admin_username: root
  admin_email: root@university.edu
  admin_password: root-pass
logging:
  level: disabled
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(memoryConfig), 0o600))
	return path
}

func TestHashPassword(t *testing.T) {
	out, err := run(t, "hash-password", "--cost", "4", "s3cret")
	require.NoError(t, err)

	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestHashPasswordRequiresArgument(t *testing.T) {
	_, err := run(t, "hash-password")
	require.Error(t, err)
}

func TestRolesListsSeededRoles(t *testing.T) {
	out, err := run(t, "roles", "--config", writeConfig(t))
	require.NoError(t, err)

	for _, role := range []string{"ADMIN", "FACULTY", "HR", "STUDENT"} {
		assert.Contains(t, out, role)
	}
	assert.Contains(t, out, "TOTAL")
}

func TestUsersListsSeededAdmin(t *testing.T) {
	out, err := run(t, "users", "--config", writeConfig(t), "--role", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "root@university.edu")
}

func TestCreateAdminRequiresFlags(t *testing.T) {
	_, err := run(t, "create-admin", "--config", writeConfig(t), "--username", "x")
	require.Error(t, err)
}

func TestCreateAdminRejectsDuplicate(t *testing.T) {
	_, err := run(t, "create-admin", "--config", writeConfig(t),
		"--username", "root", "--email", "other@university.edu", "--password", "changeme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}
