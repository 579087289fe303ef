package config

// ResourceLimiterConfig holds the memory floor checked before each run.
// Launching Chromium on a starved host tends to wedge the whole machine.
type ResourceLimiterConfig struct {
	Enabled           bool `json:"enabled" yaml:"enabled"`
	MinAvailableMemMB int  `json:"min_available_mem_mb,omitempty" yaml:"min_available_mem_mb,omitempty" validate:"omitempty,min=64"`
}

// NewDefaultResourceLimiterConfig requires 512MB free before a run.
func NewDefaultResourceLimiterConfig() ResourceLimiterConfig {
	return ResourceLimiterConfig{
		Enabled:           true,
		MinAvailableMemMB: 512,
	}
}
