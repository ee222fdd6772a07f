package allowlist

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[bot]
token = "file-token"
guild_id = 100

[db]
url = "postgres://bot:secret@db:5432/allowlist"

[channels]
application = 1
review = 2
logs = 3

[applications]
allowlisted_role = 4
cooldown_seconds = 3600
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_FileWithDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "file-token", cfg.Bot.Token)
	assert.Equal(t, snowflake.ID(2), cfg.Channels.Review)
	assert.Equal(t, time.Hour, cfg.Applications.Cooldown())
	assert.Equal(t, 5*time.Minute, cfg.Applications.PromptTimeout())
	assert.Equal(t, 18, cfg.Applications.MinimumAge)
	assert.Equal(t, "postgres://bot:secret@db:5432/allowlist", cfg.DB.DSN())
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("MOD_REVIEW_CHANNEL_ID", "222")
	t.Setenv("APPLICATION_COOLDOWN", "86400")
	t.Setenv("COOLDOWN_BYPASS_IDS", "10,20")

	cfg, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Bot.Token)
	assert.Equal(t, snowflake.ID(222), cfg.Channels.Review)
	assert.Equal(t, snowflake.ID(1), cfg.Channels.Application)
	assert.Equal(t, 24*time.Hour, cfg.Applications.Cooldown())
	assert.Equal(t, []string{"10", "20"}, cfg.Applications.BypassIDStrings())
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `[bot]
token = "x"`))

	require.Error(t, err)
	assert.ErrorContains(t, err, "MOD_REVIEW_CHANNEL_ID")
	assert.ErrorContains(t, err, "ALLOWLISTED_ROLE_ID")
}
