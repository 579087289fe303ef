package differ

import (
	"bambawatch/internal/models"

	"github.com/rs/zerolog"
)

// ChangeDetector diffs the newest run batch against the immediately
// preceding one. Only consecutive batches are compared; nothing is inferred
// across gaps.
type ChangeDetector struct {
	logger zerolog.Logger
}

// NewChangeDetector creates a ChangeDetector.
func NewChangeDetector(logger zerolog.Logger) *ChangeDetector {
	return &ChangeDetector{
		logger: logger.With().Str("component", "ChangeDetector").Logger(),
	}
}

// priorState is what we remember about an item from the previous batch.
type priorState struct {
	available bool
}

// itemKey identifies an item across batches. Identity is the exact display
// name including the size token; there is no stable product id in the
// source data, so a renamed product looks like a removal plus an addition.
type itemKey struct {
	store string
	name  string
}

// Detect returns the availability transitions between previous and current.
// Unchanged items are omitted: only transitions are operationally
// meaningful. Detect is pure, so running it twice yields identical results.
func (cd *ChangeDetector) Detect(current, previous models.RunBatch) []models.Change {
	prior := make(map[itemKey]priorState)
	for _, obs := range previous {
		for _, item := range obs.Products {
			prior[itemKey{store: obs.Store, name: item.Name}] = priorState{available: item.Available}
		}
	}

	var changes []models.Change
	for _, obs := range current {
		for _, item := range obs.Products {
			key := itemKey{store: obs.Store, name: item.Name}
			kind := classify(item, prior, key)
			if kind == models.ChangeUnchanged {
				continue
			}
			changes = append(changes, models.Change{
				Store:     obs.Store,
				ItemName:  item.Name,
				Kind:      kind,
				Price:     item.Price,
				Available: item.Available,
			})
		}
	}

	cd.logger.Debug().
		Int("prior_items", len(prior)).
		Int("changes", len(changes)).
		Msg("Change detection completed")
	return changes
}

func classify(item models.Item, prior map[itemKey]priorState, key itemKey) models.ChangeKind {
	state, seen := prior[key]
	if !seen {
		if item.Available {
			return models.ChangeNewAvailable
		}
		return models.ChangeNewUnavailable
	}
	if state.available == item.Available {
		return models.ChangeUnchanged
	}
	if item.Available {
		return models.ChangeBecameAvailable
	}
	return models.ChangeBecameUnavailable
}
