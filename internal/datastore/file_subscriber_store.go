package datastore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"bambawatch/internal/common/errorwrapper"
	"bambawatch/internal/models"

	"github.com/rs/zerolog"
)

// FileSubscriberStore keeps subscribers in a single JSON file. Suited to
// the single-host deployment; the SQLite backend covers anything bigger.
type FileSubscriberStore struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
}

type subscriberFile struct {
	Users []models.Subscriber `json:"users"`
}

// NewFileSubscriberStore creates a store backed by the given JSON file.
func NewFileSubscriberStore(path string, logger zerolog.Logger) *FileSubscriberStore {
	return &FileSubscriberStore{
		path:   path,
		logger: logger.With().Str("component", "FileSubscriberStore").Logger(),
	}
}

// List returns subscribers filtered by frequency; empty means all.
func (fss *FileSubscriberStore) List(_ context.Context, freq models.Frequency) ([]models.Subscriber, error) {
	fss.mu.Lock()
	defer fss.mu.Unlock()

	doc, err := fss.load()
	if err != nil {
		return nil, err
	}

	var out []models.Subscriber
	for _, sub := range doc.Users {
		sub.ApplyDefaults()
		if freq == "" || sub.Frequency == freq {
			out = append(out, sub)
		}
	}
	return out, nil
}

// Upsert inserts or updates the subscriber identified by address.
func (fss *FileSubscriberStore) Upsert(_ context.Context, address string, prefs models.Preferences) (UpsertOutcome, error) {
	fss.mu.Lock()
	defer fss.mu.Unlock()

	doc, err := fss.load()
	if err != nil {
		return "", err
	}

	outcome := UpsertCreated
	updated := false
	for i, sub := range doc.Users {
		if sub.Address == address {
			doc.Users[i] = models.NewSubscriber(address, prefs)
			outcome = UpsertUpdated
			updated = true
			break
		}
	}
	if !updated {
		doc.Users = append(doc.Users, models.NewSubscriber(address, prefs))
	}

	if err := fss.write(doc); err != nil {
		return "", err
	}
	fss.logger.Info().Str("outcome", string(outcome)).Msg("Subscriber upserted")
	return outcome, nil
}

// Remove deletes the subscriber identified by address.
func (fss *FileSubscriberStore) Remove(_ context.Context, address string) (bool, error) {
	fss.mu.Lock()
	defer fss.mu.Unlock()

	doc, err := fss.load()
	if err != nil {
		return false, err
	}

	for i, sub := range doc.Users {
		if sub.Address == address {
			doc.Users = append(doc.Users[:i], doc.Users[i+1:]...)
			if err := fss.write(doc); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// Close is a no-op for the file backend.
func (fss *FileSubscriberStore) Close() error { return nil }

func (fss *FileSubscriberStore) load() (*subscriberFile, error) {
	data, err := os.ReadFile(fss.path)
	if os.IsNotExist(err) {
		return &subscriberFile{}, nil
	}
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read subscriber file")
	}

	var doc subscriberFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to decode subscriber file")
	}
	return &doc, nil
}

func (fss *FileSubscriberStore) write(doc *subscriberFile) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal subscribers")
	}

	dir := filepath.Dir(fss.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errorwrapper.WrapError(err, "failed to create subscriber directory")
	}

	tmp, err := os.CreateTemp(dir, ".subscribers-*.json")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create temp subscriber file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to write temp subscriber file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to close temp subscriber file")
	}

	if err := os.Rename(tmpName, fss.path); err != nil {
		os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to replace subscriber file")
	}
	return nil
}
