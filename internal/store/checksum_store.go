package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/civiclens/civiclens/internal/model"
)

// ChecksumStore handles database operations for last-seen fingerprints
type ChecksumStore struct {
	db *sql.DB
}

// NewChecksumStore creates a new ChecksumStore
func NewChecksumStore(db *sql.DB) *ChecksumStore {
	return &ChecksumStore{db: db}
}

// Get retrieves the checksum record for an external identity, nil when absent
func (s *ChecksumStore) Get(ctx context.Context, officialID string) (*model.ChecksumRecord, error) {
	query := `
		SELECT official_id, last_checksum, updated_at
		FROM official_checksums
		WHERE official_id = $1
	`

	var r model.ChecksumRecord
	err := s.db.QueryRowContext(ctx, query, officialID).Scan(
		&r.OfficialID,
		&r.LastChecksum,
		&r.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get checksum for %s: %w", officialID, err)
	}

	return &r, nil
}

// Upsert records the fingerprint for an external identity. Callers must only
// invoke this after the matching change request is durably enqueued; the
// enqueue-then-upsert ordering is what gives the queue at-least-once
// semantics across crashes.
func (s *ChecksumStore) Upsert(ctx context.Context, officialID, checksum string) error {
	query := `
		INSERT INTO official_checksums (official_id, last_checksum, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (official_id) DO UPDATE SET
			last_checksum = EXCLUDED.last_checksum,
			updated_at = EXCLUDED.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, officialID, checksum); err != nil {
		return fmt.Errorf("failed to upsert checksum for %s: %w", officialID, err)
	}

	return nil
}
