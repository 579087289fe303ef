package config

import (
	"bambawatch/internal/logger"
	"bambawatch/internal/models"
)

// GlobalConfig contains all configuration sections for the application.
// It is constructed once at startup and handed to each component; no
// component reads ambient environment state directly.
type GlobalConfig struct {
	Mode                  string                `json:"mode,omitempty" yaml:"mode,omitempty" validate:"omitempty,oneof=onetime automated digest"`
	Stores                []models.Store        `json:"stores,omitempty" yaml:"stores,omitempty" validate:"min=1,dive"`
	LogConfig             logger.LogConfig      `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	ExtractorConfig       ExtractorConfig       `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	StorageConfig         StorageConfig         `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	SubscriberStoreConfig SubscriberStoreConfig `json:"subscriber_store_config,omitempty" yaml:"subscriber_store_config,omitempty"`
	NotificationConfig    NotificationConfig    `json:"notification_config,omitempty" yaml:"notification_config,omitempty"`
	SchedulerConfig       SchedulerConfig       `json:"scheduler_config,omitempty" yaml:"scheduler_config,omitempty"`
	ArtifactConfig        ArtifactConfig        `json:"artifact_config,omitempty" yaml:"artifact_config,omitempty"`
	ResourceLimiterConfig ResourceLimiterConfig `json:"resource_limiter_config,omitempty" yaml:"resource_limiter_config,omitempty"`
}

// NewDefaultGlobalConfig creates a GlobalConfig with default values.
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		Mode:                  "onetime",
		Stores:                DefaultStores(),
		LogConfig:             logger.NewDefaultLogConfig(),
		ExtractorConfig:       NewDefaultExtractorConfig(),
		StorageConfig:         NewDefaultStorageConfig(),
		SubscriberStoreConfig: NewDefaultSubscriberStoreConfig(),
		NotificationConfig:    NewDefaultNotificationConfig(),
		SchedulerConfig:       NewDefaultSchedulerConfig(),
		ArtifactConfig:        NewDefaultArtifactConfig(),
		ResourceLimiterConfig: NewDefaultResourceLimiterConfig(),
	}
}

// DefaultStores returns the built-in monitored store pages.
func DefaultStores() []models.Store {
	return []models.Store{
		{Name: "Dianella", URL: "https://www.coles.com.au/find-stores/coles/wa/dianella-256"},
		{Name: "Mirrabooka", URL: "https://www.coles.com.au/find-stores/coles/wa/mirrabooka-421"},
	}
}
