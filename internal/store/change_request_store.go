package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/civiclens/civiclens/internal/model"
)

// ChangeRequestStore is the append-only queue of approved mutations, kept
// independent of the authoritative officials record
type ChangeRequestStore struct {
	db *sql.DB
}

// NewChangeRequestStore creates a new ChangeRequestStore
func NewChangeRequestStore(db *sql.DB) *ChangeRequestStore {
	return &ChangeRequestStore{db: db}
}

// Enqueue inserts one pending change request for an approved diff. The insert
// is append-only and never de-duplicated: a crash between enqueue and the
// checksum upsert can legitimately leave duplicate pending rows, and
// consumers must de-duplicate on external_id plus office_id.
func (s *ChangeRequestStore) Enqueue(ctx context.Context, diff model.Diff) error {
	payload, err := buildPayload(diff)
	if err != nil {
		return fmt.Errorf("failed to build change request payload: %w", err)
	}

	request := model.ChangeRequest{
		ID:         uuid.New(),
		ExternalID: diff.ExternalID,
		OfficeID:   sql.NullString{String: diff.OfficeID, Valid: diff.OfficeID != ""},
		Payload:    payload,
		Status:     model.ChangeStatusPending,
	}

	query := `
		INSERT INTO change_requests (id, external_id, office_id, payload, status)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err = s.db.ExecContext(ctx, query,
		request.ID,
		request.ExternalID,
		request.OfficeID,
		request.Payload,
		request.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue change request for %s: %w", diff.ExternalID, err)
	}

	return nil
}

// CountPending returns how many change requests await application
func (s *ChangeRequestStore) CountPending(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM change_requests WHERE status = $1`,
		model.ChangeStatusPending,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count pending change requests: %w", err)
	}
	return count, nil
}

func buildPayload(diff model.Diff) ([]byte, error) {
	if diff.IsNew {
		return json.Marshal(map[string]any{
			"newOfficial": diff.Record,
		})
	}
	return json.Marshal(map[string]any{
		"official":      diff.Record,
		"changeSummary": diff.Summary,
	})
}
