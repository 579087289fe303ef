package logger

// LogConfig holds logger settings as they appear in the config file.
type LogConfig struct {
	LogLevel   string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error fatal panic trace"`
	LogFormat  string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=console json"`
	LogFile    string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	MaxSizeMB  int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty"`
	MaxBackups int    `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty"`
}

// NewDefaultLogConfig returns the default logger configuration: console
// output at info level, no file logging.
func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogLevel:   "info",
		LogFormat:  "console",
		MaxSizeMB:  100,
		MaxBackups: 3,
	}
}
