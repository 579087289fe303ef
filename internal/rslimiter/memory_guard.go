package rslimiter

import (
	"bambawatch/internal/config"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/mem"
)

// MemoryGuard checks system memory before a run. Chromium on a starved
// host tends to take the whole machine down with it, so the run is skipped
// instead.
type MemoryGuard struct {
	cfg    config.ResourceLimiterConfig
	logger zerolog.Logger
}

// NewMemoryGuard creates a MemoryGuard.
func NewMemoryGuard(cfg config.ResourceLimiterConfig, logger zerolog.Logger) *MemoryGuard {
	return &MemoryGuard{
		cfg:    cfg,
		logger: logger.With().Str("component", "MemoryGuard").Logger(),
	}
}

// AllowRun reports whether enough memory is available to launch a browser
// session. When the probe itself fails the run is allowed; the guard is an
// optimization, not a gate the pipeline depends on.
func (mg *MemoryGuard) AllowRun() bool {
	if !mg.cfg.Enabled {
		return true
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		mg.logger.Warn().Err(err).Msg("Memory probe failed, allowing run")
		return true
	}

	availableMB := int(vm.Available / (1024 * 1024))
	if availableMB < mg.cfg.MinAvailableMemMB {
		mg.logger.Warn().
			Int("available_mb", availableMB).
			Int("required_mb", mg.cfg.MinAvailableMemMB).
			Msg("Not enough free memory, skipping run")
		return false
	}

	mg.logger.Debug().Int("available_mb", availableMB).Msg("Memory check passed")
	return true
}
