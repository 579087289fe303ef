package models

// Store represents one monitored retail location. The list of stores is
// static configuration loaded at process start and never mutated afterwards.
type Store struct {
	Name string `json:"name" yaml:"name" validate:"required"`
	URL  string `json:"url" yaml:"url" validate:"required,url"`
}
