package datastore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"bambawatch/internal/common/errorwrapper"
	"bambawatch/internal/models"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteSubscriberStore keeps subscribers in a local SQLite database.
type SQLiteSubscriberStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

const subscriberSchema = `
CREATE TABLE IF NOT EXISTS subscribers (
	address        TEXT PRIMARY KEY,
	frequency      TEXT NOT NULL,
	store_filter   TEXT NOT NULL,
	size_filter    TEXT NOT NULL,
	only_on_change INTEGER NOT NULL DEFAULT 0,
	include_facts  INTEGER NOT NULL DEFAULT 0,
	updated_at     TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_subscribers_frequency ON subscribers(frequency);
`

// NewSQLiteSubscriberStore opens (creating if needed) the database and
// ensures the schema exists.
func NewSQLiteSubscriberStore(dataSourceName string, logger zerolog.Logger) (*SQLiteSubscriberStore, error) {
	dbDir := filepath.Dir(dataSourceName)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to create subscriber database directory")
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to open subscriber database")
	}

	if _, err := db.Exec(subscriberSchema); err != nil {
		db.Close()
		return nil, errorwrapper.WrapError(err, "failed to initialize subscriber schema")
	}

	logger = logger.With().Str("component", "SQLiteSubscriberStore").Logger()
	logger.Info().Str("db_path", dataSourceName).Msg("Subscriber database initialized")

	return &SQLiteSubscriberStore{db: db, logger: logger}, nil
}

// List returns subscribers filtered by frequency; empty means all.
func (sss *SQLiteSubscriberStore) List(ctx context.Context, freq models.Frequency) ([]models.Subscriber, error) {
	query := `SELECT address, frequency, store_filter, size_filter, only_on_change, include_facts FROM subscribers`
	args := []any{}
	if freq != "" {
		query += ` WHERE frequency = ?`
		args = append(args, string(freq))
	}
	query += ` ORDER BY address`

	rows, err := sss.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to query subscribers")
	}
	defer rows.Close()

	var subs []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		var frequency string
		if err := rows.Scan(&sub.Address, &frequency, &sub.StoreFilter, &sub.SizeFilter, &sub.OnlyOnChange, &sub.IncludeFacts); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to scan subscriber row")
		}
		sub.Frequency = models.Frequency(frequency)
		sub.ApplyDefaults()
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

// Upsert inserts or updates the subscriber identified by address.
func (sss *SQLiteSubscriberStore) Upsert(ctx context.Context, address string, prefs models.Preferences) (UpsertOutcome, error) {
	prefs.ApplyDefaults()

	// SQLite reports one affected row for both branches of the conflict
	// clause, so check existence up front to tell created from updated.
	var exists bool
	err := sss.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM subscribers WHERE address = ?)`, address).Scan(&exists)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to check subscriber existence")
	}

	_, err = sss.db.ExecContext(ctx, `
		INSERT INTO subscribers (address, frequency, store_filter, size_filter, only_on_change, include_facts)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			frequency = excluded.frequency,
			store_filter = excluded.store_filter,
			size_filter = excluded.size_filter,
			only_on_change = excluded.only_on_change,
			include_facts = excluded.include_facts,
			updated_at = CURRENT_TIMESTAMP`,
		address, string(prefs.Frequency), prefs.StoreFilter, prefs.SizeFilter, prefs.OnlyOnChange, prefs.IncludeFacts)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to upsert subscriber")
	}

	if exists {
		return UpsertUpdated, nil
	}
	return UpsertCreated, nil
}

// Remove deletes the subscriber identified by address.
func (sss *SQLiteSubscriberStore) Remove(ctx context.Context, address string) (bool, error) {
	res, err := sss.db.ExecContext(ctx, `DELETE FROM subscribers WHERE address = ?`, address)
	if err != nil {
		return false, errorwrapper.WrapError(err, "failed to remove subscriber")
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, errorwrapper.WrapError(err, "failed to read affected rows")
	}
	return affected > 0, nil
}

// Close closes the underlying database.
func (sss *SQLiteSubscriberStore) Close() error {
	return sss.db.Close()
}
