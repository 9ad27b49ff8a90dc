package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/civiclens/civiclens/internal/model"
)

// updatedSummary is all an Updated diff can say: the prior field values are
// not retained, only the fingerprint, so the engine knows that one of the
// tracked fields changed but not which.
const updatedSummary = "one or more of name, party, start date, or office changed"

// Fingerprint computes the deterministic change-detection checksum for an
// official. Only name, party, start date, and office identity feed the hash;
// contact-field changes are invisible to change detection, a stated
// limitation of the pipeline.
func Fingerprint(o model.Official) string {
	input := strings.Join([]string{o.Name, string(o.Party), o.StartDate, o.OfficeID}, "|")
	hash := md5.Sum([]byte(input))
	return hex.EncodeToString(hash[:])
}

// ChecksumStore persists the last-seen fingerprint per external identity
type ChecksumStore interface {
	Get(ctx context.Context, officialID string) (*model.ChecksumRecord, error)
	// Upsert must only be called after the corresponding change request has
	// been durably enqueued; writing here is what marks a change as seen.
	Upsert(ctx context.Context, officialID, checksum string) error
}

// Engine classifies normalized officials as New, Updated, or Unchanged
// against the checksum store. Detection is read-only: the store is never
// written here, so an unapproved diff surfaces again on the next run.
type Engine struct {
	checksums ChecksumStore
}

func NewEngine(checksums ChecksumStore) *Engine {
	return &Engine{checksums: checksums}
}

// Classify returns one diff per new or updated official, in input order.
// Unchanged officials are dropped and never surfaced.
func (e *Engine) Classify(ctx context.Context, officials []model.Official) ([]model.Diff, error) {
	var diffs []model.Diff

	for _, o := range officials {
		fingerprint := Fingerprint(o)

		record, err := e.checksums.Get(ctx, o.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up checksum for %s: %w", o.ExternalID, err)
		}

		switch {
		case record == nil:
			diffs = append(diffs, model.Diff{
				ExternalID:  o.ExternalID,
				OfficeID:    o.OfficeID,
				IsNew:       true,
				Record:      o,
				Fingerprint: fingerprint,
			})
		case record.LastChecksum != fingerprint:
			diffs = append(diffs, model.Diff{
				ExternalID:  o.ExternalID,
				OfficeID:    o.OfficeID,
				IsNew:       false,
				Summary:     updatedSummary,
				Record:      o,
				Fingerprint: fingerprint,
			})
		}
	}

	return diffs, nil
}
