package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
}

func TestEmbeddedDefaults(t *testing.T) {
	cfg, err := LoadWithDirs(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.MaxIterations)
	assert.Equal(t, "git", cfg.GitBinary)
	assert.False(t, cfg.Validate)
	assert.Equal(t, 80, cfg.PreviewMaxLen)
	assert.Equal(t, []string{"embedded"}, cfg.Sources())
	assert.NoError(t, cfg.Check())
}

func TestGlobalOverridesDefaults(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, "max_iterations: 10\nvalidate: true\n")

	cfg, err := LoadWithDirs(globalDir, "")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.MaxIterations)
	assert.True(t, cfg.Validate)
	assert.Equal(t, "git", cfg.GitBinary, "untouched keys keep defaults")
	assert.Len(t, cfg.Sources(), 2)
}

func TestLocalOverridesGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, "max_iterations: 10\ngit_binary: /usr/bin/git\n")
	localDir := t.TempDir()
	writeConfig(t, localDir, "max_iterations: 3\n")

	cfg, err := LoadWithDirs(globalDir, localDir)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxIterations)
	assert.Equal(t, "/usr/bin/git", cfg.GitBinary, "local silence keeps global value")
}

func TestExplicitFalseOverrides(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, "validate: true\n")
	localDir := t.TempDir()
	writeConfig(t, localDir, "validate: false\n")

	cfg, err := LoadWithDirs(globalDir, localDir)
	require.NoError(t, err)

	assert.False(t, cfg.Validate, "explicit false must win over global true")
	assert.True(t, cfg.ValidateSet)
}

func TestEnvOverridesGlobal(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, "max_iterations: 10\n")
	t.Setenv("PATCHDOCTOR_MAX_ITERATIONS", "7")
	t.Setenv("PATCHDOCTOR_VALIDATE", "true")

	cfg, err := LoadWithDirs(globalDir, "")
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.MaxIterations)
	assert.True(t, cfg.Validate)
}

func TestLocalOverridesEnv(t *testing.T) {
	t.Setenv("PATCHDOCTOR_MAX_ITERATIONS", "7")
	localDir := t.TempDir()
	writeConfig(t, localDir, "max_iterations: 2\n")

	cfg, err := LoadWithDirs(t.TempDir(), localDir)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.MaxIterations)
}

func TestMalformedConfigFails(t *testing.T) {
	globalDir := t.TempDir()
	writeConfig(t, globalDir, "max_iterations: [not a number\n")

	_, err := LoadWithDirs(globalDir, "")
	assert.Error(t, err)
}

func TestCheckRejectsBadValues(t *testing.T) {
	cfg := &Config{MaxIterations: 0, GitBinary: "git", PreviewMaxLen: 80}
	assert.Error(t, cfg.Check())

	cfg = &Config{MaxIterations: 5, GitBinary: "", PreviewMaxLen: 80}
	assert.Error(t, cfg.Check())

	cfg = &Config{MaxIterations: 5, GitBinary: "git", PreviewMaxLen: 0}
	assert.Error(t, cfg.Check())
}
