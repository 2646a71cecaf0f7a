package signalwire

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client sends SMS through the SignalWire LaML (Twilio-compatible) REST API.
type Client struct {
	baseURL    string
	projectID  string
	apiToken   string
	fromNumber string
	http       *http.Client
}

// NewClient accepts the space either as "example.signalwire.com" or a full URL.
func NewClient(spaceURL, projectID, apiToken, fromNumber string, transport http.RoundTripper, timeout time.Duration) *Client {
	base := strings.TrimRight(spaceURL, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return &Client{
		baseURL:    base,
		projectID:  projectID,
		apiToken:   apiToken,
		fromNumber: fromNumber,
		http:       &http.Client{Timeout: timeout, Transport: transport},
	}
}

type messageResponse struct {
	SID          string `json:"sid"`
	Status       string `json:"status"`
	ErrorCode    *int   `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) SendSMS(ctx context.Context, to, body string) error {
	form := url.Values{
		"From": {c.fromNumber},
		"To":   {to},
		"Body": {body},
	}
	endpoint := fmt.Sprintf("%s/api/laml/2010-04-01/Accounts/%s/Messages.json", c.baseURL, url.PathEscape(c.projectID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("signalwire: send sms: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("signalwire: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(raw, &e) == nil && e.Message != "" {
			return fmt.Errorf("signalwire: status %d: %s (code %d)", resp.StatusCode, e.Message, e.Code)
		}
		return fmt.Errorf("signalwire: status %d", resp.StatusCode)
	}

	var msg messageResponse
	if err := json.Unmarshal(raw, &msg); err != nil {
		return fmt.Errorf("signalwire: decode response: %w", err)
	}
	if msg.ErrorCode != nil {
		return fmt.Errorf("signalwire: message %s rejected: %s (code %d)", msg.SID, msg.ErrorMessage, *msg.ErrorCode)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.SetBasicAuth(c.projectID, c.apiToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
}
