package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  driver: sqlite
  path: ":memory:"
move_comments:
  show_user_tickets: true
  candidate_limit: 5
`)

	cfg, err := Load("", path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.GetDSN())
	assert.True(t, cfg.MoveComments.ShowUserTickets)
	assert.False(t, cfg.MoveComments.ShowAssignedTickets)
	assert.Equal(t, 5, cfg.MoveComments.CandidateLimit)
	assert.True(t, cfg.MoveComments.EnableSearch)
	assert.True(t, cfg.MoveComments.AttachmentOriginTracking)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "database:\n  driver: sqlite\n")
	t.Setenv("MOVECOMMENTS_MOVE_COMMENTS_ENABLE_SEARCH", "false")
	t.Setenv("MOVECOMMENTS_SERVER_PORT", "9090")

	cfg, err := Load("release", path)
	require.NoError(t, err)

	assert.False(t, cfg.MoveComments.EnableSearch)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "unknown driver", body: "database:\n  driver: oracle\n"},
		{name: "negative candidate limit", body: "move_comments:\n  candidate_limit: -1\n"},
		{name: "bad log format", body: "logger:\n  format: xml\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("", writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
