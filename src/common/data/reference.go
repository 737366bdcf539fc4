package data

import (
	"context"
	"fmt"
	"time"
)

const referenceFetchSchema = `
CREATE TABLE IF NOT EXISTS reference_fetch (
	key          TEXT PRIMARY KEY,
	last_fetched TIMESTAMPTZ NOT NULL DEFAULT 'epoch',
	max_age      INTERVAL NOT NULL
)`

// EnsureReferenceFetch creates the fetch bookkeeping table and registers keys
// that are not tracked yet as immediately stale.
func (dc *DataClient) EnsureReferenceFetch(ctx context.Context, keys []string, maxAge time.Duration) error {
	if _, err := dc.pg.Exec(ctx, referenceFetchSchema); err != nil {
		return fmt.Errorf("failed to create reference_fetch: %w", err)
	}
	for _, key := range keys {
		_, err := dc.pg.Exec(ctx, `
			INSERT INTO reference_fetch (key, max_age)
			VALUES ($1, make_interval(secs => $2))
			ON CONFLICT (key) DO NOTHING
		`, key, maxAge.Seconds())
		if err != nil {
			return fmt.Errorf("failed to register reference key %s: %w", key, err)
		}
	}
	return nil
}

func (dc *DataClient) StaleReferenceKeys(ctx context.Context) ([]string, error) {
	rows, err := dc.pg.Query(ctx, "SELECT key FROM reference_fetch WHERE last_fetched + max_age < NOW()")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (dc *DataClient) MarkReferenceFetched(ctx context.Context, key string) error {
	_, err := dc.pg.Exec(ctx, "UPDATE reference_fetch SET last_fetched = NOW() WHERE key = $1", key)
	return err
}
