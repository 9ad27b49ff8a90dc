package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Party is the normalized political party affiliation
type Party string

const (
	PartyRepublican  Party = "Republican"
	PartyDemocratic  Party = "Democratic"
	PartyIndependent Party = "Independent"
	PartyUnknown     Party = "Unknown"
)

// Level identifies which government level an official serves at
type Level string

const (
	LevelFederal Level = "federal"
	LevelState   Level = "state"
)

// OfficeType identifies the branch of government for an office
type OfficeType string

const (
	OfficeTypeExecutive   OfficeType = "executive"
	OfficeTypeLegislative OfficeType = "legislative"
	OfficeTypeJudicial    OfficeType = "judicial"
)

// Official is the canonical normalized representation of an elected official,
// independent of which upstream directory it came from.
//
// ExternalID identifies the person (source-scoped); OfficeID identifies the
// seat and is derived purely from office, state, and district, so a person
// changing seats yields a different OfficeID than a re-election to the same
// seat.
type Official struct {
	ExternalID string     `json:"externalId"`
	OfficeID   string     `json:"officeId"`
	Name       string     `json:"name"`
	Party      Party      `json:"party"`
	Office     string     `json:"office"`
	State      string     `json:"state"`
	Level      Level      `json:"level"`
	OfficeType OfficeType `json:"officeType"`
	District   string     `json:"district,omitempty"`
	StartDate  string     `json:"startDate,omitempty"`
	EndDate    string     `json:"endDate,omitempty"`
	Email      string     `json:"email,omitempty"`
	Website    string     `json:"website,omitempty"`
}

// ChecksumRecord is the last fingerprint persisted for an external identity
type ChecksumRecord struct {
	OfficialID   string
	LastChecksum string
	UpdatedAt    time.Time
}

// Diff is a detected change for one official, produced by the checksum engine.
// IsNew distinguishes first-seen officials from fingerprint mismatches. For
// updates only Summary is available; the prior field values are not retained,
// so the diff reports that the tracked fields changed, not which one.
type Diff struct {
	ExternalID  string
	OfficeID    string
	IsNew       bool
	Summary     string
	Record      Official
	Fingerprint string
}

// ChangeRequestStatus is the lifecycle state of a queued change request.
// The pipeline only ever inserts pending requests; applying or rejecting
// them is the responsibility of a downstream collaborator.
type ChangeRequestStatus string

const (
	ChangeStatusPending  ChangeRequestStatus = "pending"
	ChangeStatusApplied  ChangeRequestStatus = "applied"
	ChangeStatusRejected ChangeRequestStatus = "rejected"
)

// ChangeRequest is a durable, queued, not-yet-applied mutation to the
// authoritative officials record
type ChangeRequest struct {
	ID         uuid.UUID
	ExternalID string
	OfficeID   sql.NullString
	Payload    []byte
	Status     ChangeRequestStatus
	CreatedAt  time.Time
}
