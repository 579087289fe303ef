package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"bambawatch/internal/common/errorwrapper"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a zerolog logger from the given configuration. Console output
// is always enabled; file output with rotation is added when LogFile is set.
func New(cfg LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Logger{}, errorwrapper.WrapError(err, "invalid log level '"+cfg.LogLevel+"'")
	}
	if cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	writers := []io.Writer{consoleWriter(cfg.LogFormat)}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return zerolog.Logger{}, errorwrapper.WrapError(err, "failed to create log directory")
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    maxSizeMB(cfg),
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Logger()

	zerolog.SetGlobalLevel(level)
	return logger, nil
}

func consoleWriter(format string) io.Writer {
	if format == "json" {
		return os.Stderr
	}
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
}

func maxSizeMB(cfg LogConfig) int {
	if cfg.MaxSizeMB <= 0 {
		return 100
	}
	return cfg.MaxSizeMB
}
