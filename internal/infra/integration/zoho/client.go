package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

// Client talks to the Zoho CRM v2 Deals module. Every request carries a
// "Zoho-oauthtoken" Authorization header taken from the token source.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient wraps base (nil means http.DefaultTransport) with the token source.
func NewClient(apiURL string, tokens oauth2.TokenSource, base http.RoundTripper, timeout time.Duration) *Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Client{
		baseURL: strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: &oauth2.Transport{Source: tokens, Base: base},
		},
	}
}

var _ entity.LeadGateway = (*Client)(nil)

func (c *Client) InsertDeal(ctx context.Context, fields entity.DealFields) ([]byte, error) {
	payload := entity.DealWrite{
		Data:    []entity.DealFields{fields},
		Trigger: entity.DefaultTriggers,
	}
	return c.do(ctx, http.MethodPost, "/Deals", payload)
}

func (c *Client) UpdateDeal(ctx context.Context, id string, fields entity.DealFields) ([]byte, error) {
	payload := entity.DealWrite{Data: []entity.DealFields{fields}}
	return c.do(ctx, http.MethodPut, "/Deals/"+url.PathEscape(id), payload)
}

func (c *Client) GetDeal(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/Deals/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode deal payload: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read zoho response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("zoho: request failed with status code %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	// Zoho answers 204 for a GET on an unknown id.
	if len(respBody) == 0 {
		return []byte("{}"), nil
	}
	return respBody, nil
}
