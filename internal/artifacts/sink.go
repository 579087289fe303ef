package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"bambawatch/internal/config"

	"github.com/rs/zerolog"
)

// Sink receives diagnostic screenshots captured between extraction steps.
// Saving is strictly best-effort: implementations must swallow failures.
type Sink interface {
	Save(store, step string, png []byte)
}

// Discard is a Sink that drops everything.
type Discard struct{}

func (Discard) Save(string, string, []byte) {}

// FileSink writes screenshots as <dir>/<store>_<step>_<timestamp>.png.
type FileSink struct {
	dir    string
	logger zerolog.Logger
}

// NewFileSink creates a FileSink rooted at the configured directory.
func NewFileSink(cfg config.ArtifactConfig, logger zerolog.Logger) *FileSink {
	return &FileSink{
		dir:    cfg.ScreenshotDir,
		logger: logger.With().Str("component", "FileSink").Logger(),
	}
}

// Save writes the screenshot to disk. Failures are logged and swallowed;
// a broken artifact sink must never affect the extraction run.
func (fs *FileSink) Save(store, step string, png []byte) {
	if len(png) == 0 {
		return
	}
	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		fs.logger.Warn().Err(err).Str("dir", fs.dir).Msg("Failed to create screenshot directory")
		return
	}
	name := fmt.Sprintf("%s_%s_%s.png", store, step, time.Now().Format("20060102_150405"))
	path := filepath.Join(fs.dir, name)
	if err := os.WriteFile(path, png, 0644); err != nil {
		fs.logger.Warn().Err(err).Str("path", path).Msg("Failed to write screenshot")
		return
	}
	fs.logger.Debug().Str("path", path).Msg("Screenshot saved")
}

// FromConfig returns a FileSink when artifacts are enabled, Discard otherwise.
func FromConfig(cfg config.ArtifactConfig, logger zerolog.Logger) Sink {
	if !cfg.Enabled {
		return Discard{}
	}
	return NewFileSink(cfg, logger)
}
