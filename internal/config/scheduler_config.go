package config

// SchedulerConfig holds the automated-mode run cadence and the operating
// window outside which runs are skipped.
type SchedulerConfig struct {
	JitterMinutes      int    `json:"jitter_minutes,omitempty" yaml:"jitter_minutes,omitempty" validate:"omitempty,min=0,max=30"`
	OperatingHourStart int    `json:"operating_hour_start,omitempty" yaml:"operating_hour_start,omitempty" validate:"min=0,max=23"`
	OperatingHourEnd   int    `json:"operating_hour_end,omitempty" yaml:"operating_hour_end,omitempty" validate:"min=0,max=24"`
	Timezone           string `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// NewDefaultSchedulerConfig returns the original cadence: hourly runs with
// a +/-10 minute jitter, between 07:00 and 23:00 Perth time.
func NewDefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		JitterMinutes:      10,
		OperatingHourStart: 7,
		OperatingHourEnd:   23,
		Timezone:           "Australia/Perth",
	}
}
