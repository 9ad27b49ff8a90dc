package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civiclens/civiclens/internal/archive"
	"github.com/civiclens/civiclens/internal/model"
)

const peoplePayload = `{"results":[
	{"id":"ocd-person/1234","name":"Street, Sharif","party":[{"name":"Democratic"}],
	 "current_role":{"title":"State Senator","type":"upper","district":"3","start_date":"2022-12-01","end_date":""},
	 "email":"sharif@example.gov","links":[{"url":"https://example.gov/street"}]}
]}`

func TestStateClientFetchAndDailyCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Contains(t, r.URL.RawQuery, "jurisdiction=PA")
		assert.Contains(t, r.URL.RawQuery, "apikey=test-key")
		w.Write([]byte(peoplePayload))
	}))
	defer server.Close()

	archives := archive.New(t.TempDir())
	client := NewStateClient("test-key", archives)
	client.baseURL = server.URL

	first := client.Fetch(context.Background(), "PA", syncDate)
	require.Len(t, first, 1)
	assert.Equal(t, "Sharif Street", first[0].Name)
	assert.Equal(t, model.PartyDemocratic, first[0].Party)
	assert.Equal(t, "State Senator—PA-3", first[0].OfficeID)
	assert.Equal(t, 1, calls)

	// the raw response is archived untouched and served on the next run
	raw, ok := archives.Get("PA", SourceOpenStates, syncDate)
	require.True(t, ok)
	assert.JSONEq(t, peoplePayload, string(raw))

	second := client.Fetch(context.Background(), "PA", syncDate)
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestStateClientDegradesToEmptyOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	archives := archive.New(t.TempDir())
	client := NewStateClient("test-key", archives)
	client.baseURL = server.URL

	assert.Empty(t, client.Fetch(context.Background(), "PA", syncDate))
}
