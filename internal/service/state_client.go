package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/civiclens/civiclens/internal/archive"
	"github.com/civiclens/civiclens/internal/model"
)

const openStatesBaseURL = "https://v3.openstates.org"

// StateClient is the source adapter for the per-jurisdiction state
// legislative directory. Same contract as the federal adapter: archive first,
// one HTTP attempt on a miss, degrade to empty on any failure.
type StateClient struct {
	apiKey    string
	baseURL   string
	archives  *archive.Store
	client    *http.Client
	errLogger *log.Logger
}

func NewStateClient(apiKey string, archives *archive.Store) *StateClient {
	return &StateClient{
		apiKey:    apiKey,
		baseURL:   openStatesBaseURL,
		archives:  archives,
		client:    &http.Client{Timeout: fetchTimeout},
		errLogger: log.New(os.Stderr, "ERROR: ", log.LstdFlags),
	}
}

type peopleResponse struct {
	Results []StatePerson `json:"results"`
}

// Fetch returns the normalized state officials for a jurisdiction, empty on
// any fetch or parse failure
func (c *StateClient) Fetch(ctx context.Context, jurisdiction string, date time.Time) []model.Official {
	body, ok := c.archives.Get(jurisdiction, SourceOpenStates, date)
	if !ok {
		url := fmt.Sprintf("%s/people?jurisdiction=%s&apikey=%s", c.baseURL, jurisdiction, c.apiKey)

		var err error
		body, err = httpGet(ctx, c.client, url)
		if err != nil {
			c.errLogger.Printf("state fetch for %s failed: %v", jurisdiction, err)
			return nil
		}

		if err := c.archives.Put(jurisdiction, SourceOpenStates, date, body); err != nil {
			c.errLogger.Printf("failed to archive %s openstates snapshot: %v", jurisdiction, err)
		}
	}

	var resp peopleResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.errLogger.Printf("state payload for %s is malformed: %v", jurisdiction, err)
		return nil
	}

	return NormalizeState(resp.Results, jurisdiction)
}
