package config

import (
	"time"

	"bambawatch/internal/common/errorwrapper"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateConfig runs struct validation plus the cross-field checks the
// tag language cannot express.
func ValidateConfig(cfg *GlobalConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return errorwrapper.WrapError(err, "config validation failed")
	}

	sc := cfg.SchedulerConfig
	if sc.OperatingHourEnd <= sc.OperatingHourStart {
		return errorwrapper.NewValidationError("operating_hour_end", sc.OperatingHourEnd,
			"operating window must end after it starts")
	}
	if sc.Timezone != "" {
		if _, err := time.LoadLocation(sc.Timezone); err != nil {
			return errorwrapper.NewValidationError("timezone", sc.Timezone, "unknown timezone")
		}
	}

	ec := cfg.ExtractorConfig
	if ec.MaxStepDelayMs < ec.MinStepDelayMs {
		return errorwrapper.NewValidationError("max_step_delay_ms", ec.MaxStepDelayMs,
			"max step delay must not be below min step delay")
	}

	return nil
}
