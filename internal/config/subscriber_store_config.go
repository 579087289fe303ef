package config

// Subscriber store backends. The backend is selected explicitly here,
// never by probing which dependency happens to be importable.
const (
	SubscriberBackendFile   = "file"
	SubscriberBackendSQLite = "sqlite"
)

// SubscriberStoreConfig selects and configures the subscriber persistence
// backend.
type SubscriberStoreConfig struct {
	Backend    string `json:"backend,omitempty" yaml:"backend,omitempty" validate:"omitempty,oneof=file sqlite"`
	FilePath   string `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	SQLitePath string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
}

// NewDefaultSubscriberStoreConfig returns the file backend pointing at
// subscribers.json.
func NewDefaultSubscriberStoreConfig() SubscriberStoreConfig {
	return SubscriberStoreConfig{
		Backend:    SubscriberBackendFile,
		FilePath:   "subscribers.json",
		SQLitePath: "data/subscribers.db",
	}
}
