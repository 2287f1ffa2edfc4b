package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			path := filepath.Join(dir, tt.level+".log")
			cfg := FileConfig{Path: path, MaxSizeMB: 1, MaxBackups: 1, MaxAgeDays: 1}
			require.NoError(t, InitWithFileConfig(tt.level, cfg, false))

			Debug("debug message", zap.String("system", "focal_point"))
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			out := string(content)
			for _, exp := range tt.expected {
				require.True(t, strings.Contains(out, exp), "expected %s in output", exp)
			}
			for _, exc := range tt.excluded {
				require.False(t, strings.Contains(out, exc), "unexpected %s in output", exc)
			}
		})
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/stealth.log")
	require.Equal(t, "/tmp/stealth.log", cfg.Path)
	require.Equal(t, 20, cfg.MaxSizeMB)
	require.Equal(t, 3, cfg.MaxBackups)
	require.True(t, cfg.Compress)
}
