package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xxz807/watertaxi/internal/platform/config"
)

func TestNewLogger_WritesRotatedFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "app.log")

	log, err := NewLogger("release", config.LogConfig{Level: "info", File: file, MaxSizeMB: 1})
	require.NoError(t, err)

	log.Info("settlement persisted", zap.String("booking_id", "bk-1"))
	log.Debug("filtered out")
	_ = log.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"booking_id":"bk-1"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger("debug", config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
