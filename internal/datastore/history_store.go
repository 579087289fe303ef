package datastore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"bambawatch/internal/common/errorwrapper"
	"bambawatch/internal/config"
	"bambawatch/internal/models"

	"github.com/rs/zerolog"
)

// HistoryStore persists the capped run history as a single JSON document.
// Appends are read-entire, mutate-in-memory, write-entire operations; the
// pipeline guarantees a single writer per run, so no file locking is done.
type HistoryStore struct {
	path      string
	retention int
	logger    zerolog.Logger
}

// NewHistoryStore creates a HistoryStore from storage configuration.
func NewHistoryStore(cfg config.StorageConfig, logger zerolog.Logger) *HistoryStore {
	return &HistoryStore{
		path:      cfg.HistoryFile,
		retention: cfg.RetentionRuns,
		logger:    logger.With().Str("component", "HistoryStore").Logger(),
	}
}

// Load reads the full history. A missing file yields an empty history; a
// present but undecodable file is an error, because appending on top of it
// would silently discard past observations.
func (hs *HistoryStore) Load() (*models.History, error) {
	data, err := os.ReadFile(hs.path)
	if os.IsNotExist(err) {
		return &models.History{}, nil
	}
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read history file")
	}

	var history models.History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errorwrapper.WrapError(errorwrapper.ErrHistoryCorrupted, err.Error())
	}
	return &history, nil
}

// AppendRun appends one run batch, enforces the retention cap and writes
// the history back atomically. It returns the batch that was the latest
// before this append, which is the change-detection baseline.
func (hs *HistoryStore) AppendRun(batch models.RunBatch) (models.RunBatch, error) {
	history, err := hs.Load()
	if err != nil {
		return nil, err
	}

	previous := history.Latest()

	history.Runs = append(history.Runs, batch)
	if hs.retention > 0 && len(history.Runs) > hs.retention {
		history.Runs = history.Runs[len(history.Runs)-hs.retention:]
	}

	if err := hs.write(history); err != nil {
		return nil, err
	}

	hs.logger.Info().
		Int("retained_runs", len(history.Runs)).
		Int("observations", len(batch)).
		Msg("Run batch appended to history")
	return previous, nil
}

// write serializes the history to a temp file and renames it into place,
// so readers never see a partially written document.
func (hs *HistoryStore) write(history *models.History) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to marshal history")
	}

	dir := filepath.Dir(hs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errorwrapper.WrapError(err, "failed to create history directory")
	}

	tmp, err := os.CreateTemp(dir, ".history-*.json")
	if err != nil {
		return errorwrapper.WrapError(err, "failed to create temp history file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to write temp history file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to close temp history file")
	}

	if err := os.Rename(tmpName, hs.path); err != nil {
		os.Remove(tmpName)
		return errorwrapper.WrapError(err, "failed to replace history file")
	}
	return nil
}
