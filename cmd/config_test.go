package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "mockscan", configBaseName)
	assert.Equal(t, "mockscan.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "path", pathFlagName)
	assert.Equal(t, "suffix", suffixFlagName)
	assert.Equal(t, "suite_pat", suitePatFlagName)
	assert.Equal(t, "test_pat", testPatFlagName)
	assert.Equal(t, "mock_pat", mockPatFlagName)
	assert.Equal(t, "MOCKSCAN", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelInfo},
		{"debug", slog.LevelDebug},
		{" WARN ", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseSlogLevel(tt.in, slog.LevelInfo), "parseSlogLevel(%q)", tt.in)
	}
}

func TestReadConfig_MissingFileIsIgnored(t *testing.T) {
	t.Chdir(t.TempDir())

	assert.NoError(t, readConfig())
}

func TestReadConfig_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("suffix: [ts\n"), 0o600))

	err := readConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), configFileName)
}

func TestConfigureLogger_DiscardsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	configureLogger("", false)
	slog.Info("dropped")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConfigureLogger_WritesConfiguredFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "scan.log")
	t.Cleanup(func() { configureLogger("", false) })

	configureLogger(logPath, false)
	slog.Info("kept")

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "kept")
}
