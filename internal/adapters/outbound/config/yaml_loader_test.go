package config_test

import (
	"os"
	"path/filepath"
	"testing"

	appconfig "github.com/abdidvp/sclkraft/internal/adapters/outbound/config"
	"github.com/abdidvp/sclkraft/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, appconfig.FileName), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := appconfig.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
strict: true
exclude_paths: ["build"]
rules:
  disabled: ["hardware-mapping"]
types:
  extra: ["TON", "CTU"]
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, []string{"build"}, cfg.ExcludePaths)
	assert.True(t, cfg.IsDisabledRule(domain.RuleHardwareMapping))
	assert.Equal(t, []string{"TON", "CTU"}, cfg.Types.Extra)
	assert.Equal(t, domain.DefaultExtensions, cfg.Extensions, "defaults fill missing extensions")
}

func TestYAMLLoader_ExplicitExtensionsWin(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "extensions: [\".awl\"]\n")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{".awl"}, cfg.Extensions)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)

	_, err := appconfig.New().Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .sclkraft.yaml")
}

func TestYAMLLoader_InvalidRule(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "rules:\n  disabled: [\"naming\"]\n")

	_, err := appconfig.New().Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .sclkraft.yaml")
}

func TestRender_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Types.Extra = []string{"TON"}

	data, err := appconfig.Render(cfg)
	require.NoError(t, err)
	writeConfig(t, dir, string(data))

	loaded, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
