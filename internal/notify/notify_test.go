package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHTTPClient struct {
	status   int
	requests []*http.Request
	bodies   []string
}

func (c *fakeHTTPClient) Do(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	c.requests = append(c.requests, req)
	c.bodies = append(c.bodies, string(body))
	return &http.Response{
		StatusCode: c.status,
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func testSummary() Summary {
	return Summary{
		Date:           time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Jurisdictions:  50,
		Processed:      48,
		ChangeRequests: 7,
		Rejected:       1,
		Errors:         1,
	}
}

func TestSlackNotifierPostsSummary(t *testing.T) {
	client := &fakeHTTPClient{status: http.StatusOK}
	n := NewSlackNotifierWithClient("https://hooks.example.com/T000/B000", client)

	require.NoError(t, n.NotifyRunSummary(context.Background(), testSummary()))

	require.Len(t, client.requests, 1)
	assert.Equal(t, http.MethodPost, client.requests[0].Method)
	assert.Equal(t, "application/json", client.requests[0].Header.Get("Content-Type"))

	var msg map[string]any
	require.NoError(t, json.Unmarshal([]byte(client.bodies[0]), &msg))
	assert.Contains(t, client.bodies[0], "2026-08-30")
	assert.Contains(t, client.bodies[0], "Change requests")
}

func TestSlackNotifierNon200IsError(t *testing.T) {
	client := &fakeHTTPClient{status: http.StatusServiceUnavailable}
	n := NewSlackNotifierWithClient("https://hooks.example.com/T000/B000", client)

	err := n.NotifyRunSummary(context.Background(), testSummary())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestLogNotifierNeverFails(t *testing.T) {
	n := NewLogNotifier()
	assert.NoError(t, n.NotifyRunSummary(context.Background(), testSummary()))
}
