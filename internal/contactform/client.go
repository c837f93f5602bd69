package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wolfman30/portfolio-contact/internal/contact"
)

// ContactPath is the endpoint path relative to the site origin.
const ContactPath = "/api/contact"

const defaultTimeout = 15 * time.Second

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contactform: endpoint returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("contactform: endpoint returned status %d: %s", e.StatusCode, e.Message)
}

// Client posts submissions to a contact endpoint over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the site at baseURL. A non-positive timeout
// uses the default so a hung endpoint cannot block a form forever.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Post sends req as JSON and succeeds only on a 2xx response.
func (c *Client) Post(ctx context.Context, req contact.SubmissionRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("contactform: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ContactPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("contactform: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("contactform: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var body contact.ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&body)
		return &StatusError{StatusCode: resp.StatusCode, Message: body.Error}
	}
	return nil
}

var _ Poster = (*Client)(nil)
