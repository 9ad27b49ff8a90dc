package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

// Summary is what the pipeline hands the notification collaborator at the
// end of a run
type Summary struct {
	Date           time.Time
	Jurisdictions  int
	Processed      int
	ChangeRequests int
	Rejected       int
	Errors         int
}

// Notifier delivers the run summary to an external collaborator. Failures
// are the caller's to log; they never affect the pipeline outcome.
type Notifier interface {
	NotifyRunSummary(ctx context.Context, summary Summary) error
}

// LogNotifier writes the summary to the process log, the default when no
// transport is configured
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: log.New(os.Stdout, "", log.LstdFlags)}
}

func (n *LogNotifier) NotifyRunSummary(_ context.Context, s Summary) error {
	n.logger.Printf("Officials sync %s: %d/%d jurisdictions processed, %d change request(s) queued, %d rejected, %d errors",
		s.Date.Format("2006-01-02"), s.Processed, s.Jurisdictions, s.ChangeRequests, s.Rejected, s.Errors)
	return nil
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SlackNotifier posts the run summary to a Slack incoming webhook
type SlackNotifier struct {
	webhookURL string
	httpClient HTTPClient
}

type slackMessage struct {
	Text        string            `json:"text"`
	Attachments []slackAttachment `json:"attachments,omitempty"`
}

type slackAttachment struct {
	Color  string       `json:"color"`
	Title  string       `json:"title"`
	Fields []slackField `json:"fields"`
	Footer string       `json:"footer"`
	Ts     int64        `json:"ts"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func NewSlackNotifierWithClient(webhookURL string, client HTTPClient) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: client,
	}
}

func (n *SlackNotifier) NotifyRunSummary(ctx context.Context, s Summary) error {
	color := "good"
	if s.Errors > 0 {
		color = "warning"
	}

	msg := slackMessage{
		Text: "*Officials Sync Complete*",
		Attachments: []slackAttachment{
			{
				Color: color,
				Title: fmt.Sprintf("Run for %s", s.Date.Format("2006-01-02")),
				Fields: []slackField{
					{Title: "Jurisdictions", Value: fmt.Sprintf("%d", s.Jurisdictions), Short: true},
					{Title: "Processed", Value: fmt.Sprintf("%d", s.Processed), Short: true},
					{Title: "Change requests", Value: fmt.Sprintf("%d", s.ChangeRequests), Short: true},
					{Title: "Rejected", Value: fmt.Sprintf("%d", s.Rejected), Short: true},
					{Title: "Errors", Value: fmt.Sprintf("%d", s.Errors), Short: true},
				},
				Footer: "CivicLens Officials Sync",
				Ts:     time.Now().Unix(),
			},
		},
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal slack message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack returned non-200 status: %d", resp.StatusCode)
	}

	return nil
}
