package xano

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

type Endpoints struct {
	VerificationURL string
	ProgressURL     string
	FormsURL        string
	StagesURL       string
}

// Client is the Xano-backed store for verification records, user progress,
// form submissions and the stage listing used by the daily report.
type Client struct {
	endpoints Endpoints
	http      *http.Client
}

func NewClient(endpoints Endpoints, transport http.RoundTripper, timeout time.Duration) *Client {
	endpoints.VerificationURL = strings.TrimRight(endpoints.VerificationURL, "/")
	endpoints.ProgressURL = strings.TrimRight(endpoints.ProgressURL, "/")
	endpoints.FormsURL = strings.TrimRight(endpoints.FormsURL, "/")
	endpoints.StagesURL = strings.TrimRight(endpoints.StagesURL, "/")
	return &Client{
		endpoints: endpoints,
		http:      &http.Client{Timeout: timeout, Transport: transport},
	}
}

// StatusError is a non-2xx answer from Xano.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("xano: %s %s: status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

// Phone verification

func (c *Client) FindPhone(ctx context.Context, phone string) (*entity.PhoneVerification, error) {
	var rec phoneVerificationRecord
	found, err := c.getJSON(ctx, c.endpoints.VerificationURL+"/phone_verification/"+url.PathEscape(phone), &rec)
	if err != nil {
		return nil, err
	}
	if !found || rec.PhoneNumber == "" {
		return nil, entity.ErrNotFound
	}
	return rec.toEntity(), nil
}

func (c *Client) CreatePhone(ctx context.Context, v *entity.PhoneVerification) error {
	return c.send(ctx, http.MethodPost, c.endpoints.VerificationURL+"/phone_verification", v, nil)
}

func (c *Client) UpdatePhone(ctx context.Context, v *entity.PhoneVerification) error {
	return c.send(ctx, http.MethodPatch, c.endpoints.VerificationURL+"/phone_verification/"+url.PathEscape(v.PhoneNumber), v, nil)
}

// Email verification

func (c *Client) FindEmail(ctx context.Context, email string) (*entity.EmailVerification, error) {
	var rec emailVerificationRecord
	found, err := c.getJSON(ctx, c.endpoints.VerificationURL+"/email_verification/"+url.PathEscape(email), &rec)
	if err != nil {
		return nil, err
	}
	if !found || rec.Email == "" {
		return nil, entity.ErrNotFound
	}
	return rec.toEntity(), nil
}

func (c *Client) CreateEmail(ctx context.Context, v *entity.EmailVerification) error {
	return c.send(ctx, http.MethodPost, c.endpoints.VerificationURL+"/email_verification", v, nil)
}

func (c *Client) UpdateEmail(ctx context.Context, v *entity.EmailVerification) error {
	return c.send(ctx, http.MethodPatch, c.endpoints.VerificationURL+"/email_verification/"+url.PathEscape(v.Email), v, nil)
}

// User progress

func (c *Client) FindProgress(ctx context.Context, email string) (*entity.Progress, error) {
	var rec progressRecord
	u := c.endpoints.ProgressURL + "/get_user_progress?" + url.Values{"email": {email}}.Encode()
	found, err := c.getJSON(ctx, u, &rec)
	if err != nil {
		return nil, err
	}
	if !found || rec.Email == "" {
		return nil, entity.ErrNotFound
	}
	return rec.toEntity(), nil
}

func (c *Client) CreateProgress(ctx context.Context, p *entity.Progress) error {
	return c.send(ctx, http.MethodPost, c.endpoints.ProgressURL+"/user_progress", p, nil)
}

func (c *Client) UpdateProgress(ctx context.Context, p *entity.Progress) error {
	return c.send(ctx, http.MethodPatch, c.endpoints.ProgressURL+"/user_progress", p, nil)
}

// Forms and reporting

func (c *Client) SaveFormSubmission(ctx context.Context, s *entity.FormSubmission) ([]byte, error) {
	var raw json.RawMessage
	if err := c.send(ctx, http.MethodPost, c.endpoints.FormsURL+"/form_submission", s, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []byte("{}"), nil
	}
	return raw, nil
}

func (c *Client) ListStages(ctx context.Context) ([]entity.StageCount, error) {
	var rows []entity.StageCount
	found, err := c.getJSON(ctx, c.endpoints.StagesURL+"/get_stages", &rows)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("xano: get_stages: %w", entity.ErrNotFound)
	}
	return rows, nil
}

// getJSON decodes a GET response into out. found is false on 404 or a null body.
func (c *Client) getJSON(ctx context.Context, u string, out any) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, u, nil)
	var se *StatusError
	if errors.As(err, &se) && se.Status == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, fmt.Errorf("xano: decode %s: %w", u, err)
	}
	return true, nil
}

func (c *Client) send(ctx context.Context, method, u string, payload any, out *json.RawMessage) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("xano: encode payload: %w", err)
	}
	body, err := c.do(ctx, method, u, b)
	if err != nil {
		return err
	}
	if out != nil {
		*out = json.RawMessage(bytes.TrimSpace(body))
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, u string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req, payload != nil)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("xano: %s %s: %w", method, u, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("xano: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Method: method, URL: u, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func (c *Client) setHeaders(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
}
