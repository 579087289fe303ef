package datastore

import (
	"context"

	"bambawatch/internal/common/errorwrapper"
	"bambawatch/internal/config"
	"bambawatch/internal/models"

	"github.com/rs/zerolog"
)

// UpsertOutcome reports whether an upsert created or updated a subscriber.
type UpsertOutcome string

const (
	UpsertCreated UpsertOutcome = "created"
	UpsertUpdated UpsertOutcome = "updated"
)

// SubscriberStore is the capability interface over subscriber persistence.
// The pipeline reads it for dispatch; the signup surface writes through it.
type SubscriberStore interface {
	// List returns subscribers, optionally filtered by frequency
	// (empty frequency means all).
	List(ctx context.Context, freq models.Frequency) ([]models.Subscriber, error)
	// Upsert inserts or updates the preferences for a contact address.
	Upsert(ctx context.Context, address string, prefs models.Preferences) (UpsertOutcome, error)
	// Remove deletes a subscriber, reporting whether one existed.
	Remove(ctx context.Context, address string) (bool, error)
	Close() error
}

// NewSubscriberStore builds the backend selected by configuration.
// Selection is explicit; there is no import probing or silent fallback.
func NewSubscriberStore(cfg config.SubscriberStoreConfig, logger zerolog.Logger) (SubscriberStore, error) {
	switch cfg.Backend {
	case config.SubscriberBackendFile, "":
		return NewFileSubscriberStore(cfg.FilePath, logger), nil
	case config.SubscriberBackendSQLite:
		return NewSQLiteSubscriberStore(cfg.SQLitePath, logger)
	default:
		return nil, errorwrapper.NewValidationError("backend", cfg.Backend, "unknown subscriber store backend")
	}
}
