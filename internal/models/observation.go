package models

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SizeClass is the normalized pack size of a product, derived from the
// size token embedded in the product's display name.
type SizeClass string

const (
	SizeSmall   SizeClass = "small"
	SizeLarge   SizeClass = "large"
	SizeUnknown SizeClass = "unknown"
)

// Product names carry the pack size as the last "|"-separated token,
// e.g. "Osem Bamba Peanut Snack | 25g". The token must match in full;
// substring matching would classify "125g" as "25g".
var sizeTokenRe = regexp.MustCompile(`^(\d+)\s*[gG]$`)

// largeThresholdGrams separates the snack pack from the family pack.
const largeThresholdGrams = 30

// SizeClassFromName derives the SizeClass from a product display name.
// Names without a delimiter or with an unparseable token map to SizeUnknown.
func SizeClassFromName(name string) SizeClass {
	idx := strings.LastIndex(name, "|")
	if idx < 0 {
		return SizeUnknown
	}
	token := strings.TrimSpace(name[idx+1:])
	m := sizeTokenRe.FindStringSubmatch(token)
	if m == nil {
		return SizeUnknown
	}
	grams, err := strconv.Atoi(m[1])
	if err != nil {
		return SizeUnknown
	}
	if grams <= largeThresholdGrams {
		return SizeSmall
	}
	return SizeLarge
}

// Item is one product tile observed at one store during one run.
// Immutable after creation.
type Item struct {
	Name      string    `json:"name"`
	Size      SizeClass `json:"size"`
	Price     string    `json:"price"`
	Available bool      `json:"available"`
}

// NewItem builds an Item, deriving the size class from the name.
func NewItem(name, price string, available bool) Item {
	return Item{
		Name:      name,
		Size:      SizeClassFromName(name),
		Price:     price,
		Available: available,
	}
}

// Observation is the recorded result of checking one store once.
type Observation struct {
	Store     string    `json:"store"`
	Timestamp time.Time `json:"timestamp"`
	Available bool      `json:"available"`
	Products  []Item    `json:"products"`
	// FailedStep names the extraction step that aborted the check, empty on
	// success. Kept optional so older history files remain readable.
	FailedStep string `json:"failed_step,omitempty"`
}

// NewObservation builds a successful Observation. Available is true iff at
// least one product is available.
func NewObservation(store string, ts time.Time, products []Item) Observation {
	obs := Observation{
		Store:     store,
		Timestamp: ts.UTC(),
		Products:  products,
	}
	for _, p := range products {
		if p.Available {
			obs.Available = true
			break
		}
	}
	return obs
}

// NewFailedObservation builds the degraded Observation recorded when an
// extraction step fails: no products, not available.
func NewFailedObservation(store string, ts time.Time, step string) Observation {
	return Observation{
		Store:      store,
		Timestamp:  ts.UTC(),
		Available:  false,
		FailedStep: step,
	}
}

// RunBatch is one complete pass over all monitored stores.
type RunBatch []Observation

// History is the retained sequence of past run batches, oldest first.
type History struct {
	Runs []RunBatch `json:"runs"`
}

// Latest returns the most recent run batch, or nil if there is none.
func (h *History) Latest() RunBatch {
	if len(h.Runs) == 0 {
		return nil
	}
	return h.Runs[len(h.Runs)-1]
}

// RunsOn returns the batches whose first observation falls on the given
// date in the given location.
func (h *History) RunsOn(day time.Time, loc *time.Location) []RunBatch {
	y, m, d := day.In(loc).Date()
	var out []RunBatch
	for _, run := range h.Runs {
		if len(run) == 0 {
			continue
		}
		ry, rm, rd := run[0].Timestamp.In(loc).Date()
		if ry == y && rm == m && rd == d {
			out = append(out, run)
		}
	}
	return out
}
