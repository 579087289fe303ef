package config

// ArtifactConfig holds settings for the diagnostic screenshot sink.
type ArtifactConfig struct {
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	ScreenshotDir string `json:"screenshot_dir,omitempty" yaml:"screenshot_dir,omitempty"`
}

// NewDefaultArtifactConfig enables screenshots under coles_screenshots/.
func NewDefaultArtifactConfig() ArtifactConfig {
	return ArtifactConfig{
		Enabled:       true,
		ScreenshotDir: "coles_screenshots",
	}
}
