package config

// StorageConfig holds settings for the observation history store.
type StorageConfig struct {
	HistoryFile   string `json:"history_file,omitempty" yaml:"history_file,omitempty"`
	RetentionRuns int    `json:"retention_runs,omitempty" yaml:"retention_runs,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultStorageConfig returns storage defaults: history.json in the
// working directory, last 30 runs retained.
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		HistoryFile:   "history.json",
		RetentionRuns: 30,
	}
}
