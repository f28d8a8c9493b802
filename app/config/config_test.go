package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
openai:
  base_url: https://example.com/v1
  token: sk-test
  model: gemini-2.0-flash
attendance:
  base_url: http://attendance:8080/api/attendance
`

func writeConfig(t *testing.T, content string) {
	t.Helper()

	t.Chdir(t.TempDir())
	require.NoError(t, os.WriteFile("config.yaml", []byte(content), 0644))
}

func TestLoadAppliesDefaults(t *testing.T) {
	writeConfig(t, validYAML)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, 8, cfg.Chat.MaxToolRounds)
	assert.Equal(t, 40, cfg.Chat.HistoryWindow)
}

func TestLoadFailsWithoutRequiredFields(t *testing.T) {
	writeConfig(t, `
openai:
  base_url: https://example.com/v1
  model: gemini-2.0-flash
attendance:
  base_url: http://attendance:8080
`)

	_, err := Load()
	assert.Error(t, err, "missing token must fail startup")
}

func TestLoadEnvOverrides(t *testing.T) {
	writeConfig(t, validYAML)

	t.Setenv("OPENAI_TOKEN", "sk-from-env")
	t.Setenv("ATTENDANCE_SERVICE_URL", "http://other:9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.OpenAI.Token)
	assert.Equal(t, "http://other:9090", cfg.Attendance.BaseURL)
}

func TestLoadFailsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load()
	assert.Error(t, err)
}
