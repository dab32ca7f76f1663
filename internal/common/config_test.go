package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "causelist.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	config := NewDefaultConfig()
	require.NoError(t, config.Validate())

	assert.Equal(t, "file", config.Storage.Type)
	assert.Equal(t, "./output/pdfs", config.Intake.Dir)
	assert.Equal(t, 600*time.Second, config.Fetcher.Timeout)
	assert.False(t, config.Scheduler.Enabled)
}

func TestLoadFromFilesOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9090

[storage]
type = "badger"

[intake]
dir = "/var/lib/causelist/pdfs"
`)

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, "badger", config.Storage.Type)
	assert.Equal(t, "/var/lib/causelist/pdfs", config.Intake.Dir)
	// Untouched sections keep their defaults
	assert.Equal(t, "localhost", config.Server.Host)
	assert.Equal(t, "Karnataka", config.Scheduler.State)
}

func TestLoadFromFilesLaterFilesWin(t *testing.T) {
	first := writeConfig(t, "[server]\nport = 9090\n")
	second := writeConfig(t, "[server]\nport = 9191\n")

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 9191, config.Server.Port)
}

func TestLoadFromFilesRejectsInvalidStorageType(t *testing.T) {
	path := writeConfig(t, "[storage]\ntype = \"redis\"\n")

	_, err := LoadFromFiles(path)
	assert.Error(t, err)
}

func TestLoadFromFilesRejectsInvalidSchedulerDay(t *testing.T) {
	path := writeConfig(t, "[scheduler]\nday = \"yesterday\"\n")

	_, err := LoadFromFiles(path)
	assert.Error(t, err)
}

func TestLoadFromFilesMissingFile(t *testing.T) {
	_, err := LoadFromFiles(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("CAUSELIST_SERVER_PORT", "7070")
	t.Setenv("CAUSELIST_INTAKE_DIR", "/tmp/intake")

	config, err := LoadFromFiles()
	require.NoError(t, err)
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "/tmp/intake", config.Intake.Dir)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := NewDefaultConfig()

	ApplyFlagOverrides(config, 8181, "0.0.0.0")
	assert.Equal(t, 8181, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	// Zero values leave config alone
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 8181, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}
