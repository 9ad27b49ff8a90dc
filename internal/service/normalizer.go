package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/civiclens/civiclens/internal/model"
)

// FederalMember is a single member entry from the congressional directory.
// Terms are chronological; only the last entry is considered the current one.
type FederalMember struct {
	BioguideID string `json:"bioguideId"`
	Name       string `json:"name"`
	PartyName  string `json:"partyName"`
	State      string `json:"state"`
	Terms      struct {
		Item []FederalTerm `json:"item"`
	} `json:"terms"`
}

// FederalTerm is one entry in a member's service history
type FederalTerm struct {
	Chamber   string `json:"chamber"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
	District  *int   `json:"district"`
	StateCode string `json:"stateCode"`
}

// StatePerson is a single person entry from the state legislative directory
type StatePerson struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party []struct {
		Name string `json:"name"`
	} `json:"party"`
	CurrentRole struct {
		Title     string `json:"title"`
		Type      string `json:"type"`
		District  string `json:"district"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	} `json:"current_role"`
	Email string `json:"email"`
	Links []struct {
		URL string `json:"url"`
	} `json:"links"`
}

// NormalizeFederal maps raw congressional members to canonical officials for
// one jurisdiction. Pure function: no I/O, never fails. Members without any
// term, or whose current chamber is neither Senate nor House, are dropped.
func NormalizeFederal(members []FederalMember, jurisdiction string) []model.Official {
	var officials []model.Official

	for _, m := range members {
		if len(m.Terms.Item) == 0 {
			continue
		}

		// Members with gaps in service are not specially handled; the last
		// term is treated as current.
		term := m.Terms.Item[len(m.Terms.Item)-1]

		official := model.Official{
			ExternalID: m.BioguideID,
			Name:       NormalizeName(m.Name),
			Party:      NormalizeParty(m.PartyName),
			State:      jurisdiction,
			Level:      model.LevelFederal,
			OfficeType: model.OfficeTypeLegislative,
			StartDate:  yearString(term.StartYear),
			EndDate:    yearString(term.EndYear),
		}

		switch {
		case strings.Contains(term.Chamber, "Senate"):
			official.Office = "U.S. Senator"
			official.OfficeID = fmt.Sprintf("U.S. Senator—%s", jurisdiction)
		case strings.Contains(term.Chamber, "House"):
			district := "At-Large"
			if term.District != nil {
				district = strconv.Itoa(*term.District)
			}
			official.Office = "U.S. Representative"
			official.District = district
			official.OfficeID = fmt.Sprintf("U.S. House—%s-%s", jurisdiction, district)
		default:
			continue
		}

		officials = append(officials, official)
	}

	return officials
}

// NormalizeState maps raw state directory people to canonical officials for
// one jurisdiction. Pure function: no I/O, never fails.
func NormalizeState(people []StatePerson, jurisdiction string) []model.Official {
	var officials []model.Official

	for _, p := range people {
		role := p.CurrentRole

		party := model.PartyUnknown
		if len(p.Party) > 0 {
			party = NormalizeParty(p.Party[0].Name)
		}

		website := ""
		if len(p.Links) > 0 {
			website = p.Links[0].URL
		}

		officials = append(officials, model.Official{
			ExternalID: p.ID,
			OfficeID:   OfficeIdentifier(role.Title, jurisdiction, role.District),
			Name:       NormalizeName(p.Name),
			Party:      party,
			Office:     role.Title,
			State:      jurisdiction,
			Level:      model.LevelState,
			OfficeType: stateOfficeType(role.Type),
			District:   role.District,
			StartDate:  role.StartDate,
			EndDate:    role.EndDate,
			Email:      p.Email,
			Website:    website,
		})
	}

	return officials
}

// OfficeIdentifier derives the stable seat identity from office, state, and
// district alone, so a person changing seats produces a different identifier
// than a person re-elected to the same seat.
func OfficeIdentifier(office, state, district string) string {
	if district == "" {
		return fmt.Sprintf("%s—%s", office, state)
	}
	return fmt.Sprintf("%s—%s-%s", office, state, district)
}

// NormalizeName converts the source "Last, First" format to "First Last".
// Names without a comma pass through unchanged.
func NormalizeName(name string) string {
	last, first, found := strings.Cut(name, ",")
	if !found {
		return name
	}
	return strings.TrimSpace(first) + " " + strings.TrimSpace(last)
}

// NormalizeParty maps a source party label onto the closed party set by
// case-insensitive substring match. Total function: unrecognized labels
// degrade to Unknown, never fail.
func NormalizeParty(name string) model.Party {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "republican"):
		return model.PartyRepublican
	case strings.Contains(lower, "democrat"):
		return model.PartyDemocratic
	case strings.Contains(lower, "independent"):
		return model.PartyIndependent
	default:
		return model.PartyUnknown
	}
}

func stateOfficeType(roleType string) model.OfficeType {
	lower := strings.ToLower(roleType)
	switch {
	case strings.Contains(lower, "executive"):
		return model.OfficeTypeExecutive
	case strings.Contains(lower, "judicial"):
		return model.OfficeTypeJudicial
	default:
		return model.OfficeTypeLegislative
	}
}

func yearString(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}
