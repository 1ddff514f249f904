package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .codeatlas/config.yml when present
// - Load() merges config file with defaults
// - Environment variables override config file values
// - Load() returns error for malformed YAML
// - Load() returns error for invalid configuration values
// - Validate() rejects negative workers and file size limits
// - Validate() rejects configs with no code and no docs patterns
// - GetSourceExtensions() derives extensions from glob patterns

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)

	assert.Contains(t, cfg.Paths.Code, "**/*.py")
	assert.Contains(t, cfg.Paths.Code, "**/*.sql")
	assert.Contains(t, cfg.Paths.Docs, "**/*.md")
	assert.Contains(t, cfg.Paths.Ignore, "node_modules/**")

	assert.Equal(t, 0, cfg.Scan.Workers)
	assert.Equal(t, 1024, cfg.Scan.MaxFileSizeKB)
	assert.Equal(t, "", cfg.Storage.Location)

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestLoadConfig_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	tempDir := t.TempDir()

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	require.NotNil(t, cfg)

	expected := Default()
	assert.Equal(t, expected.Paths.Code, cfg.Paths.Code)
	assert.Equal(t, expected.Scan.MaxFileSizeKB, cfg.Scan.MaxFileSizeKB)
}

func TestLoadConfig_LoadsFromConfigYml(t *testing.T) {
	tempDir := t.TempDir()
	atlasDir := filepath.Join(tempDir, ".codeatlas")
	require.NoError(t, os.MkdirAll(atlasDir, 0755))

	configContent := `
paths:
  code:
    - "**/*.py"
  docs:
    - "**/*.md"
  ignore:
    - "vendor/**"

scan:
  workers: 4
  max_file_size_kb: 256

storage:
  location: /tmp/atlas.db
`

	configPath := filepath.Join(atlasDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader(tempDir)
	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"**/*.py"}, cfg.Paths.Code)
	assert.Equal(t, []string{"vendor/**"}, cfg.Paths.Ignore)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, 256, cfg.Scan.MaxFileSizeKB)
	assert.Equal(t, "/tmp/atlas.db", cfg.Storage.Location)
}

func TestLoadConfig_MergesFileWithDefaults(t *testing.T) {
	tempDir := t.TempDir()
	atlasDir := filepath.Join(tempDir, ".codeatlas")
	require.NoError(t, os.MkdirAll(atlasDir, 0755))

	// Only scan.workers is set; everything else should keep defaults.
	configContent := "scan:\n  workers: 2\n"
	configPath := filepath.Join(atlasDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Scan.Workers)
	assert.Equal(t, Default().Paths.Code, cfg.Paths.Code)
	assert.Equal(t, Default().Scan.MaxFileSizeKB, cfg.Scan.MaxFileSizeKB)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("CODEATLAS_SCAN_WORKERS", "8")
	t.Setenv("CODEATLAS_STORAGE_LOCATION", "/var/atlas.db")

	cfg, err := LoadConfigFromDir(tempDir)

	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Scan.Workers)
	assert.Equal(t, "/var/atlas.db", cfg.Storage.Location)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	atlasDir := filepath.Join(tempDir, ".codeatlas")
	require.NoError(t, os.MkdirAll(atlasDir, 0755))

	configPath := filepath.Join(atlasDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("paths: [unclosed"), 0644))

	_, err := LoadConfigFromDir(tempDir)
	assert.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	tempDir := t.TempDir()
	atlasDir := filepath.Join(tempDir, ".codeatlas")
	require.NoError(t, os.MkdirAll(atlasDir, 0755))

	configContent := "scan:\n  workers: -1\n"
	configPath := filepath.Join(atlasDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	_, err := LoadConfigFromDir(tempDir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidWorkers)
}

func TestValidate_RejectsNegativeFileSize(t *testing.T) {
	cfg := Default()
	cfg.Scan.MaxFileSizeKB = -5

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFileSize)
}

func TestValidate_RejectsEmptyPatterns(t *testing.T) {
	cfg := Default()
	cfg.Paths.Code = nil
	cfg.Paths.Docs = nil

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyPatterns)
}

func TestGetSourceExtensions(t *testing.T) {
	cfg := &Config{
		Paths: PathsConfig{
			Code: []string{"**/*.py", "**/*.ts", "src/*.py"},
			Docs: []string{"**/*.md"},
		},
	}

	exts := cfg.GetSourceExtensions()
	assert.ElementsMatch(t, []string{".py", ".ts", ".md"}, exts)
}
