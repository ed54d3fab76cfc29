// Package logging builds the process logger
//
// Output is discarded unless a console writer or a debug log file is configured
// The debug file is rotated by lumberjack under logs/
package logging

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults
const (
	DefaultDir        = "logs"
	DefaultFileName   = "vi-eyes.log"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 7
)

// Config selects level, console format and the rotated debug file
type Config struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"` // console or json
	File       string `mapstructure:"file"`   // empty disables the file sink
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// Defaults returns an info-level console config with no file sink
func Defaults() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		MaxSize:    DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAgeDays,
	}
}

// DebugFile returns the default rotated debug log path
func DebugFile() string {
	return filepath.Join(DefaultDir, DefaultFileName)
}

var (
	global atomic.Pointer[zap.Logger]
	once   sync.Once
)

func encoder(format string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02T15:04:05.000Z07:00")
	if format == "json" {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewJSONEncoder(ec)
	}
	ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return zapcore.NewConsoleEncoder(ec)
}

// New builds a logger; console may be nil
// With neither console nor file the result is a no-op logger
func New(cfg Config, console zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	var cores []zapcore.Core
	if console != nil {
		cores = append(cores, zapcore.NewCore(encoder(cfg.Format), console, level))
	}
	if cfg.File != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
		// File output is always JSON
		cores = append(cores, zapcore.NewCore(encoder("json"), w, level))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).Named("vi-eyes")
}

// Initialize installs the global logger once
func Initialize(cfg Config, console zapcore.WriteSyncer) *zap.Logger {
	once.Do(func() {
		l := New(cfg, console)
		global.Store(l)
		zap.ReplaceGlobals(l)
	})
	return GetLogger()
}

// GetLogger returns the global logger, or a no-op logger before Initialize
func GetLogger() *zap.Logger {
	if l := global.Load(); l != nil {
		return l
	}
	return zap.NewNop()
}

// ResetForTest clears the global logger; tests only
func ResetForTest() {
	global.Store(nil)
	once = sync.Once{}
}
