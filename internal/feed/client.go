package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/idanlevi/redalert-monitor/internal/domain/alert"
)

// alertDateLayout is the timestamp format used by the feed's alertDate field.
const alertDateLayout = "2006-01-02 15:04:05"

// DefaultTimeout is the default per-request timeout for feed fetches.
const DefaultTimeout = 10 * time.Second

// defaultUserAgent mimics a desktop browser; the upstream endpoint rejects
// requests with obvious non-browser agents.
const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// utf8BOM is stripped from the response body; the feed serves UTF-8 with a
// byte order mark.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// rawRecord mirrors the upstream JSON schema of one active alert.
type rawRecord struct {
	// Category is the numeric alert category code.
	Category int `json:"category"`
	// Title is the alert headline.
	Title string `json:"title"`
	// Data is the area name the alert applies to.
	Data string `json:"data"`
	// AlertDate is the alert time in "2006-01-02 15:04:05" format.
	AlertDate string `json:"alertDate"`
}

// Client fetches the active-alerts snapshot from the Home Front Command feed.
type Client struct {
	// url is the alerts feed endpoint.
	url string
	// httpClient performs the requests with the configured timeout.
	httpClient *http.Client
	// userAgent is sent with every request.
	userAgent string
	// now supplies the fallback timestamp for unparseable alert dates.
	now func() time.Time
}

// Option configures client behaviour.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// NewClient creates a feed client for the provided alerts URL.
func NewClient(url string, opts ...Option) *Client {
	client := &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: defaultUserAgent,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Fetch returns the current snapshot of active alerts across all areas.
// An empty body means the feed legitimately reports no alerts anywhere and
// yields an empty snapshot, not an error.
func (c *Client) Fetch(ctx context.Context) ([]alert.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch alerts: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch alerts: unexpected status %s", resp.Status)
	}

	var body bytes.Buffer
	if _, err = body.ReadFrom(resp.Body); err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	payload := bytes.TrimSpace(bytes.TrimPrefix(body.Bytes(), utf8BOM))
	if len(payload) == 0 {
		return nil, nil
	}

	var raw []rawRecord
	if err = json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}

	records := make([]alert.Record, 0, len(raw))
	for _, r := range raw {
		records = append(records, alert.Record{
			Category:  r.Category,
			Title:     r.Title,
			Area:      r.Data,
			Timestamp: c.parseAlertDate(r.AlertDate),
		})
	}

	return records, nil
}

// parseAlertDate parses the feed's alertDate value, falling back to the
// current time when it is missing or malformed. The feed publishes local
// time without a zone.
func (c *Client) parseAlertDate(value string) time.Time {
	parsed, err := time.ParseInLocation(alertDateLayout, value, time.Local)
	if err != nil {
		return c.now()
	}

	return parsed
}
