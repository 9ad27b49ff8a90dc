package service

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/civiclens/civiclens/internal/model"
	"github.com/civiclens/civiclens/internal/notify"
)

// Jurisdictions is the fixed list of state codes processed per run,
// sequentially and in this order
var Jurisdictions = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// SourceAdapter fetches and normalizes one upstream directory for a
// jurisdiction, consulting the archive cache first. Adapters degrade to an
// empty list on failure and never return errors.
type SourceAdapter interface {
	Fetch(ctx context.Context, jurisdiction string, date time.Time) []model.Official
}

// ChangeRequestSink durably queues approved mutations. Enqueue must complete
// before the corresponding checksum upsert: the write ordering gives the
// queue at-least-once semantics across crashes. Downstream consumers must
// de-duplicate pending requests on external and office identity.
type ChangeRequestSink interface {
	Enqueue(ctx context.Context, diff model.Diff) error
}

// SyncStats aggregates one run's outcome
type SyncStats struct {
	Jurisdictions  int
	Processed      int
	ChangeRequests int
	Rejected       int
	Errors         int
}

// Syncer orchestrates the officials sync pipeline: adapters, checksum engine,
// human review, and the durable apply step, one jurisdiction at a time.
// Exactly one Syncer instance may run at a time; concurrent runs can produce
// duplicate or lost updates and are unsupported.
type Syncer struct {
	federal   SourceAdapter
	state     SourceAdapter
	engine    *Engine
	checksums ChecksumStore
	sink      ChangeRequestSink
	confirmer Confirmer
	notifier  notify.Notifier
	logger    *log.Logger
	errLogger *log.Logger
}

func NewSyncer(federal, state SourceAdapter, engine *Engine, checksums ChecksumStore, sink ChangeRequestSink, confirmer Confirmer, notifier notify.Notifier) *Syncer {
	return &Syncer{
		federal:   federal,
		state:     state,
		engine:    engine,
		checksums: checksums,
		sink:      sink,
		confirmer: confirmer,
		notifier:  notifier,
		logger:    log.New(os.Stdout, "", log.LstdFlags),
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// Run processes each jurisdiction in order. A failure inside one jurisdiction
// is logged and counted, never aborts the run. On completion the notification
// collaborator receives the summary; a notification failure is logged only.
func (s *Syncer) Run(ctx context.Context, jurisdictions []string, date time.Time) (*SyncStats, error) {
	stats := &SyncStats{Jurisdictions: len(jurisdictions)}

	for idx, jurisdiction := range jurisdictions {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		progress := fmt.Sprintf("[%d/%d]", idx+1, len(jurisdictions))
		s.logger.Printf("%s Syncing %s...", progress, jurisdiction)

		created, rejected, err := s.syncJurisdiction(ctx, jurisdiction, date)
		if err != nil {
			s.errLogger.Printf("Failed to sync %s: %v", jurisdiction, err)
			stats.Errors++
			continue
		}
		if rejected {
			s.logger.Printf("  %s batch rejected, no changes applied", jurisdiction)
			stats.Rejected++
			continue
		}

		stats.Processed++
		stats.ChangeRequests += created
	}

	summary := notify.Summary{
		Date:           date,
		Jurisdictions:  stats.Jurisdictions,
		Processed:      stats.Processed,
		ChangeRequests: stats.ChangeRequests,
		Rejected:       stats.Rejected,
		Errors:         stats.Errors,
	}
	if err := s.notifier.NotifyRunSummary(ctx, summary); err != nil {
		s.errLogger.Printf("Failed to send run notification: %v", err)
	}

	return stats, nil
}

// syncJurisdiction runs the pure stages (fetch, normalize, diff) and then the
// single effectful stage (review, apply) for one jurisdiction
func (s *Syncer) syncJurisdiction(ctx context.Context, jurisdiction string, date time.Time) (created int, rejected bool, err error) {
	officials := s.federal.Fetch(ctx, jurisdiction, date)
	officials = append(officials, s.state.Fetch(ctx, jurisdiction, date)...)

	diffs, err := s.engine.Classify(ctx, officials)
	if err != nil {
		return 0, false, fmt.Errorf("failed to classify officials: %w", err)
	}

	if len(diffs) == 0 {
		s.logger.Printf("  %s: no changes", jurisdiction)
		return 0, false, nil
	}

	approved, err := s.confirmer.Confirm(RenderBatch(jurisdiction, diffs))
	if err != nil {
		return 0, false, fmt.Errorf("failed to confirm batch: %w", err)
	}
	if !approved {
		return 0, true, nil
	}

	// Each diff's persistence is attempted and reported separately. Enqueue
	// before checksum upsert: a crash between the two re-surfaces the diff on
	// the next run, a duplicate pending request at worst (at-least-once).
	for _, diff := range diffs {
		if err := s.sink.Enqueue(ctx, diff); err != nil {
			s.errLogger.Printf("Failed to enqueue change request for %s: %v", diff.ExternalID, err)
			continue
		}
		if err := s.checksums.Upsert(ctx, diff.ExternalID, diff.Fingerprint); err != nil {
			// The request is already durable; the stale checksum means this
			// diff re-surfaces next run.
			s.errLogger.Printf("Failed to record checksum for %s: %v", diff.ExternalID, err)
		}
		created++
	}

	s.logger.Printf("  %s: %d change request(s) queued", jurisdiction, created)
	return created, false, nil
}

// PrintSummary prints the run statistics
func (s *Syncer) PrintSummary(stats *SyncStats) {
	s.logger.Println("")
	s.logger.Println("=== Sync Summary ===")
	s.logger.Printf("Jurisdictions:    %d", stats.Jurisdictions)
	s.logger.Printf("Processed:        %d", stats.Processed)
	s.logger.Printf("Change requests:  %d", stats.ChangeRequests)
	s.logger.Printf("Rejected:         %d", stats.Rejected)
	s.logger.Printf("Errors:           %d", stats.Errors)
}
