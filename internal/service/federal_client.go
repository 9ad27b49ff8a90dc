package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/civiclens/civiclens/internal/archive"
	"github.com/civiclens/civiclens/internal/model"
)

// Archive source names, mirrored in the archive file layout
// {STATE}-{senate|house|openstates}.json
const (
	SourceSenate     = "senate"
	SourceHouse      = "house"
	SourceOpenStates = "openstates"
)

const (
	congressBaseURL = "https://api.congress.gov/v3"
	fetchTimeout    = 30 * time.Second
)

// FederalClient is the source adapter for the congressional member directory.
// It consults the archive first, performs at most one HTTP attempt per run on
// a miss, and degrades to an empty list on any failure so a federal outage
// never blocks state-level updates for the same jurisdiction.
type FederalClient struct {
	apiKey    string
	baseURL   string
	archives  *archive.Store
	client    *http.Client
	errLogger *log.Logger
}

func NewFederalClient(apiKey string, archives *archive.Store) *FederalClient {
	return &FederalClient{
		apiKey:    apiKey,
		baseURL:   congressBaseURL,
		archives:  archives,
		client:    &http.Client{Timeout: fetchTimeout},
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

// memberListResponse keeps members raw so the per-state chamber subsets can
// be archived as unmodified upstream JSON
type memberListResponse struct {
	Members []json.RawMessage `json:"members"`
}

// Fetch returns the normalized federal officials for a jurisdiction, empty on
// any fetch or parse failure. The failure is logged, never returned past the
// adapter boundary.
func (c *FederalClient) Fetch(ctx context.Context, jurisdiction string, date time.Time) []model.Official {
	senate, senateOK := c.archives.Get(jurisdiction, SourceSenate, date)
	house, houseOK := c.archives.Get(jurisdiction, SourceHouse, date)

	if !senateOK || !houseOK {
		var err error
		senate, house, err = c.fetchMembers(ctx, jurisdiction, date)
		if err != nil {
			c.errLogger.Printf("federal fetch for %s failed: %v", jurisdiction, err)
			return nil
		}
	}

	officials, err := decodeFederal(senate, house, jurisdiction)
	if err != nil {
		c.errLogger.Printf("federal payload for %s is malformed: %v", jurisdiction, err)
		return nil
	}

	return officials
}

// fetchMembers downloads the full member list and archives the jurisdiction's
// senate and house subsets. Both keys are always written, possibly as empty
// arrays, so a later run for the same day hits the cache with zero network
// calls. Archive write failures degrade to "no cache": the snapshot bytes are
// still returned and the next run fetches again.
func (c *FederalClient) fetchMembers(ctx context.Context, jurisdiction string, date time.Time) (senate, house []byte, err error) {
	url := fmt.Sprintf("%s/member?api_key=%s&limit=600", c.baseURL, c.apiKey)

	body, err := httpGet(ctx, c.client, url)
	if err != nil {
		return nil, nil, err
	}

	var resp memberListResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to parse member response: %w", err)
	}

	senateRaw := make([]json.RawMessage, 0)
	houseRaw := make([]json.RawMessage, 0)
	for _, raw := range resp.Members {
		var m FederalMember
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, nil, fmt.Errorf("failed to parse member entry: %w", err)
		}
		if len(m.Terms.Item) == 0 {
			continue
		}

		term := m.Terms.Item[len(m.Terms.Item)-1]
		if term.StateCode != jurisdiction {
			continue
		}

		switch {
		case strings.Contains(term.Chamber, "Senate"):
			senateRaw = append(senateRaw, raw)
		case strings.Contains(term.Chamber, "House"):
			houseRaw = append(houseRaw, raw)
		}
	}

	senate, err = json.Marshal(senateRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode senate snapshot: %w", err)
	}
	house, err = json.Marshal(houseRaw)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode house snapshot: %w", err)
	}

	if err := c.archives.Put(jurisdiction, SourceSenate, date, senate); err != nil {
		c.errLogger.Printf("failed to archive %s senate snapshot: %v", jurisdiction, err)
	}
	if err := c.archives.Put(jurisdiction, SourceHouse, date, house); err != nil {
		c.errLogger.Printf("failed to archive %s house snapshot: %v", jurisdiction, err)
	}

	return senate, house, nil
}

func decodeFederal(senate, house []byte, jurisdiction string) ([]model.Official, error) {
	var members []FederalMember
	for _, data := range [][]byte{senate, house} {
		var chamber []FederalMember
		if err := json.Unmarshal(data, &chamber); err != nil {
			return nil, fmt.Errorf("failed to parse member snapshot: %w", err)
		}
		members = append(members, chamber...)
	}
	return NormalizeFederal(members, jurisdiction), nil
}

// httpGet performs a single GET attempt. No retries: the archive makes reruns
// cheap, and a shared rate-limited key is in play.
func httpGet(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return body, nil
}
