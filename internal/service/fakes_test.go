package service

import (
	"context"
	"time"

	"github.com/civiclens/civiclens/internal/model"
	"github.com/civiclens/civiclens/internal/notify"
)

type fakeChecksumStore struct {
	records map[string]model.ChecksumRecord
	failGet map[string]error
	upserts int
}

func newFakeChecksumStore() *fakeChecksumStore {
	return &fakeChecksumStore{
		records: make(map[string]model.ChecksumRecord),
		failGet: make(map[string]error),
	}
}

func (f *fakeChecksumStore) Get(_ context.Context, officialID string) (*model.ChecksumRecord, error) {
	if err := f.failGet[officialID]; err != nil {
		return nil, err
	}
	r, ok := f.records[officialID]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeChecksumStore) Upsert(_ context.Context, officialID, checksum string) error {
	f.records[officialID] = model.ChecksumRecord{
		OfficialID:   officialID,
		LastChecksum: checksum,
		UpdatedAt:    time.Now(),
	}
	f.upserts++
	return nil
}

type fakeSink struct {
	enqueued []model.Diff
	failOn   map[string]error
}

func newFakeSink() *fakeSink {
	return &fakeSink{failOn: make(map[string]error)}
}

func (f *fakeSink) Enqueue(_ context.Context, diff model.Diff) error {
	if err := f.failOn[diff.ExternalID]; err != nil {
		return err
	}
	f.enqueued = append(f.enqueued, diff)
	return nil
}

type adapterFunc func(ctx context.Context, jurisdiction string, date time.Time) []model.Official

func (f adapterFunc) Fetch(ctx context.Context, jurisdiction string, date time.Time) []model.Official {
	return f(ctx, jurisdiction, date)
}

func emptyAdapter(context.Context, string, time.Time) []model.Official { return nil }

type scriptedConfirmer struct {
	approve   bool
	summaries []string
}

func (c *scriptedConfirmer) Confirm(summary string) (bool, error) {
	c.summaries = append(c.summaries, summary)
	return c.approve, nil
}

type fakeNotifier struct {
	summaries []notify.Summary
	err       error
}

func (n *fakeNotifier) NotifyRunSummary(_ context.Context, s notify.Summary) error {
	n.summaries = append(n.summaries, s)
	return n.err
}
