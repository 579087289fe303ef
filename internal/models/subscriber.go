package models

// Frequency is a subscriber's notification cadence.
type Frequency string

const (
	FrequencyImmediate Frequency = "immediate"
	FrequencyDaily     Frequency = "daily"
)

// FilterAll is the wildcard value for the store and size filters.
const FilterAll = "all"

// Preferences captures what a subscriber wants to hear about. Zero values
// are normalized by ApplyDefaults at construction time, never at read time.
type Preferences struct {
	Frequency    Frequency `json:"frequency" yaml:"frequency"`
	StoreFilter  string    `json:"store_filter" yaml:"store_filter"`
	SizeFilter   string    `json:"size_filter" yaml:"size_filter"`
	OnlyOnChange bool      `json:"only_on_change" yaml:"only_on_change"`
	IncludeFacts bool      `json:"include_facts" yaml:"include_facts"`
}

// ApplyDefaults fills unset preference fields.
func (p *Preferences) ApplyDefaults() {
	if p.Frequency == "" {
		p.Frequency = FrequencyImmediate
	}
	if p.StoreFilter == "" {
		p.StoreFilter = FilterAll
	}
	if p.SizeFilter == "" {
		p.SizeFilter = FilterAll
	}
}

// Subscriber is one notification recipient. The contact address is opaque
// to the pipeline; the backing store may encrypt it at rest.
type Subscriber struct {
	Address     string `json:"address"`
	Preferences `yaml:",inline"`
}

// NewSubscriber builds a Subscriber with defaults applied.
func NewSubscriber(address string, prefs Preferences) Subscriber {
	prefs.ApplyDefaults()
	return Subscriber{Address: address, Preferences: prefs}
}

// WantsStore reports whether the subscriber cares about the given store.
func (s Subscriber) WantsStore(store string) bool {
	return s.StoreFilter == FilterAll || s.StoreFilter == store
}

// WantsSize reports whether the subscriber cares about the given size class.
func (s Subscriber) WantsSize(size SizeClass) bool {
	return s.SizeFilter == FilterAll || s.SizeFilter == string(size)
}
