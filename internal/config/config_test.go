package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unimitr-backend/internal/domain"
)

const baseYAML = `
server:
  port: 8000
database:
  host: localhost
  port: 5432
  user: unimitr
  database: unimitr
jwt:
  secret: "0123456789abcdef0123456789abcdef"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL())
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL())
	assert.Equal(t, "gemini-2.0-flash", cfg.Chat.Model)
	assert.False(t, cfg.Workflow.StrictTransitions)
	assert.Equal(t, ":8000", cfg.GetServerAddress())
	assert.Equal(t, "0 5 0 * * *", cfg.Scheduler.CloseExpiredInternships)
	assert.Equal(t, "postgres://unimitr:@localhost:5432/unimitr?sslmode=disable", cfg.GetDatabaseConnectionString())

	assert.Equal(t, SecurityAnonymous, cfg.Access.GetSecurityLevel(domain.KindEvents, OpCreate))
	assert.Equal(t, SecurityStaff, cfg.Access.GetSecurityLevel(domain.KindEvents, OpListActions))
	assert.Equal(t, SecurityStaff, cfg.Access.GetSecurityLevel(domain.KindWorkshops, OpTransition))
	assert.Equal(t, SecurityAnonymous, cfg.Access.GetSecurityLevel(domain.KindInternships, OpSubmit))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(writeConfig(t, baseYAML))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "key-123", cfg.Chat.APIKey)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_AccessOverride(t *testing.T) {
	cfg, err := Load(writeConfig(t, baseYAML+`
access:
  events:
    create: staff
workflow:
  strict_transitions: true
`))
	require.NoError(t, err)
	assert.Equal(t, SecurityStaff, cfg.Access.GetSecurityLevel(domain.KindEvents, OpCreate))
	assert.Equal(t, SecurityAnonymous, cfg.Access.GetSecurityLevel(domain.KindEvents, OpUpdate))
	assert.True(t, cfg.Workflow.StrictTransitions)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"Short secret", "server: {port: 8000}\ndatabase: {host: h, user: u, database: d}\njwt: {secret: short}\n"},
		{"Unknown domain", baseYAML + "access:\n  parties:\n    create: staff\n"},
		{"Unknown level", baseYAML + "access:\n  clubs:\n    create: admin\n"},
		{"Unknown operation", baseYAML + "access:\n  clubs:\n    archive: staff\n"},
		{"Missing port", "database: {host: h, user: u, database: d}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestDefaultAccess_CoversEveryOperation(t *testing.T) {
	access := DefaultAccess()
	for _, kind := range domain.Kinds {
		for _, op := range Operations() {
			_, ok := access[kind][op]
			assert.True(t, ok, "%s/%s", kind, op)
		}
	}
	assert.Equal(t, SecurityStaff, AccessConfig{}.GetSecurityLevel(domain.KindEvents, OpList))
}
