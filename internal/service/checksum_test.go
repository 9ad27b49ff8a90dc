package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclens/civiclens/internal/model"
)

func testOfficial() model.Official {
	return model.Official{
		ExternalID: "F000479",
		OfficeID:   "U.S. Senator—PA",
		Name:       "John Fetterman",
		Party:      model.PartyDemocratic,
		Office:     "U.S. Senator",
		State:      "PA",
		Level:      model.LevelFederal,
		OfficeType: model.OfficeTypeLegislative,
		StartDate:  "2023",
		Email:      "john@example.gov",
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	o := testOfficial()
	assert.Equal(t, Fingerprint(o), Fingerprint(o))
	assert.Len(t, Fingerprint(o), 32)
}

func TestFingerprintTrackedFieldSensitivity(t *testing.T) {
	base := Fingerprint(testOfficial())

	name := testOfficial()
	name.Name = "Jon Fetterman"
	assert.NotEqual(t, base, Fingerprint(name))

	party := testOfficial()
	party.Party = model.PartyIndependent
	assert.NotEqual(t, base, Fingerprint(party))

	start := testOfficial()
	start.StartDate = "2029"
	assert.NotEqual(t, base, Fingerprint(start))

	office := testOfficial()
	office.OfficeID = "U.S. Senator—OH"
	assert.NotEqual(t, base, Fingerprint(office))
}

func TestFingerprintIgnoresContactFields(t *testing.T) {
	// contact changes are invisible to change detection, a stated limitation
	changed := testOfficial()
	changed.Email = "newaddress@example.gov"
	changed.Website = "https://example.gov/fetterman"
	assert.Equal(t, Fingerprint(testOfficial()), Fingerprint(changed))
}

func TestClassifyNewOfficial(t *testing.T) {
	checksums := newFakeChecksumStore()
	engine := NewEngine(checksums)

	diffs, err := engine.Classify(context.Background(), []model.Official{testOfficial()})
	require.NoError(t, err)
	require.Len(t, diffs, 1)

	d := diffs[0]
	assert.True(t, d.IsNew)
	assert.Equal(t, "F000479", d.ExternalID)
	assert.Equal(t, "U.S. Senator—PA", d.OfficeID)
	assert.Equal(t, Fingerprint(testOfficial()), d.Fingerprint)
	assert.Empty(t, d.Summary)

	// detection never writes the store
	assert.Zero(t, checksums.upserts)
}

func TestClassifyUpdatedOfficial(t *testing.T) {
	checksums := newFakeChecksumStore()
	require.NoError(t, checksums.Upsert(context.Background(), "F000479", "stale-fingerprint"))
	checksums.upserts = 0
	engine := NewEngine(checksums)

	diffs, err := engine.Classify(context.Background(), []model.Official{testOfficial()})
	require.NoError(t, err)
	require.Len(t, diffs, 1)

	d := diffs[0]
	assert.False(t, d.IsNew)
	assert.NotEmpty(t, d.Summary)
	assert.Equal(t, Fingerprint(testOfficial()), d.Fingerprint)
	assert.Zero(t, checksums.upserts)
}

func TestClassifyUnchangedOfficialDropped(t *testing.T) {
	checksums := newFakeChecksumStore()
	require.NoError(t, checksums.Upsert(context.Background(), "F000479", Fingerprint(testOfficial())))
	engine := NewEngine(checksums)

	diffs, err := engine.Classify(context.Background(), []model.Official{testOfficial()})
	require.NoError(t, err)
	assert.Empty(t, diffs)
}
