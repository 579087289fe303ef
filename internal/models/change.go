package models

// ChangeKind classifies the availability transition of one item between
// two consecutive run batches.
type ChangeKind string

const (
	// ChangeNewAvailable indicates an item seen for the first time, in stock.
	ChangeNewAvailable ChangeKind = "new_available"
	// ChangeNewUnavailable indicates an item seen for the first time, out of stock.
	ChangeNewUnavailable ChangeKind = "new_unavailable"
	// ChangeBecameAvailable indicates an item that flipped to in stock.
	ChangeBecameAvailable ChangeKind = "became_available"
	// ChangeBecameUnavailable indicates an item that flipped to out of stock.
	ChangeBecameUnavailable ChangeKind = "became_unavailable"
	// ChangeUnchanged indicates no transition; detectors omit these.
	ChangeUnchanged ChangeKind = "unchanged"
)

// IsNewlyAvailable reports whether the kind represents stock appearing.
func (k ChangeKind) IsNewlyAvailable() bool {
	return k == ChangeNewAvailable || k == ChangeBecameAvailable
}

// Change is one detected transition for a (store, item name) pair.
// Changes are recomputed from history every run and never persisted.
type Change struct {
	Store     string     `json:"store"`
	ItemName  string     `json:"item_name"`
	Kind      ChangeKind `json:"kind"`
	Price     string     `json:"price"`
	Available bool       `json:"available"`
}
