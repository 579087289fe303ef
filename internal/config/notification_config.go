package config

// NotificationConfig holds outbound email settings and digest scheduling.
type NotificationConfig struct {
	SMTPServer     string  `json:"smtp_server,omitempty" yaml:"smtp_server,omitempty"`
	SMTPPort       int     `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" validate:"omitempty,min=1,max=65535"`
	SMTPUsername   string  `json:"smtp_username,omitempty" yaml:"smtp_username,omitempty"`
	SMTPPassword   string  `json:"smtp_password,omitempty" yaml:"smtp_password,omitempty"`
	FromAddress    string  `json:"from_address,omitempty" yaml:"from_address,omitempty" validate:"omitempty,email"`
	SubjectPrefix  string  `json:"subject_prefix,omitempty" yaml:"subject_prefix,omitempty"`
	DigestCron     string  `json:"digest_cron,omitempty" yaml:"digest_cron,omitempty"`
	SendsPerSecond float64 `json:"sends_per_second,omitempty" yaml:"sends_per_second,omitempty" validate:"omitempty,gt=0"`
	SendBurst      int     `json:"send_burst,omitempty" yaml:"send_burst,omitempty" validate:"omitempty,min=1"`
}

// NewDefaultNotificationConfig returns notification defaults. The digest
// goes out at 18:00 local time; sends are throttled to stay friendly with
// the SMTP relay.
func NewDefaultNotificationConfig() NotificationConfig {
	return NotificationConfig{
		SMTPPort:       587,
		FromAddress:    "noreply@bambabot.com",
		SubjectPrefix:  "[BambaWatch]",
		DigestCron:     "0 18 * * *",
		SendsPerSecond: 2,
		SendBurst:      4,
	}
}
