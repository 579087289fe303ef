package config

// ExtractorConfig holds settings for the browser-driven availability extractor.
type ExtractorConfig struct {
	ChromePath          string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	Headless            bool   `json:"headless" yaml:"headless"`
	UserAgent           string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	WindowWidth         int    `json:"window_width,omitempty" yaml:"window_width,omitempty" validate:"omitempty,min=320"`
	WindowHeight        int    `json:"window_height,omitempty" yaml:"window_height,omitempty" validate:"omitempty,min=240"`
	SearchQuery         string `json:"search_query,omitempty" yaml:"search_query,omitempty"`
	HomeURL             string `json:"home_url,omitempty" yaml:"home_url,omitempty" validate:"omitempty,url"`
	NavigationTimeoutMs int    `json:"navigation_timeout_ms,omitempty" yaml:"navigation_timeout_ms,omitempty" validate:"omitempty,min=1000"`
	SelectorTimeoutMs   int    `json:"selector_timeout_ms,omitempty" yaml:"selector_timeout_ms,omitempty" validate:"omitempty,min=500"`
	ResultsTimeoutMs    int    `json:"results_timeout_ms,omitempty" yaml:"results_timeout_ms,omitempty" validate:"omitempty,min=500"`
	MinStepDelayMs      int    `json:"min_step_delay_ms,omitempty" yaml:"min_step_delay_ms,omitempty"`
	MaxStepDelayMs      int    `json:"max_step_delay_ms,omitempty" yaml:"max_step_delay_ms,omitempty"`
}

// NewDefaultExtractorConfig returns extractor defaults mirroring a patient
// human shopper: headless Chrome, desktop viewport, 0.5-3s pacing.
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		Headless: true,
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
			"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		WindowWidth:         1280,
		WindowHeight:        920,
		SearchQuery:         "bamba",
		HomeURL:             "https://www.coles.com.au",
		NavigationTimeoutMs: 60000,
		SelectorTimeoutMs:   10000,
		ResultsTimeoutMs:    15000,
		MinStepDelayMs:      500,
		MaxStepDelayMs:      3000,
	}
}
