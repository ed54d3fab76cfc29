package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_DiscardsWithoutSinks(t *testing.T) {
	l := New(Defaults(), nil)
	assert.False(t, l.Core().Enabled(zapcore.ErrorLevel))
}

func TestNew_ConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := Defaults()
	cfg.Level = "warn"
	l := New(cfg, zapcore.AddSync(&buf))
	l.Info("hidden")
	l.Warn("shown")
	require.NoError(t, l.Sync())

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	cfg := Defaults()
	cfg.Level = "loud"
	l := New(cfg, zapcore.AddSync(&buf))
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_FileSink(t *testing.T) {
	dir := t.TempDir()
	cfg := Defaults()
	cfg.Level = "debug"
	cfg.File = filepath.Join(dir, DefaultFileName)

	l := New(cfg, nil)
	l.Debug("frame", zapcoreField())
	require.NoError(t, l.Sync())

	data, err := os.ReadFile(cfg.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"frame"`)
	assert.Contains(t, string(data), `"logger":"vi-eyes"`)
}

func zapcoreField() zapcore.Field {
	return zapcore.Field{Key: "n", Type: zapcore.Int64Type, Integer: 3}
}

func TestInitialize_Once(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	assert.False(t, GetLogger().Core().Enabled(zapcore.ErrorLevel), "no-op before init")

	var first, second bytes.Buffer
	l := Initialize(Defaults(), zapcore.AddSync(&first))
	Initialize(Defaults(), zapcore.AddSync(&second))
	assert.Same(t, l, GetLogger())

	GetLogger().Info("hello")
	assert.Contains(t, first.String(), "hello")
	assert.Empty(t, second.String())
}

func TestDebugFile(t *testing.T) {
	assert.Equal(t, filepath.Join("logs", "vi-eyes.log"), DebugFile())
}
