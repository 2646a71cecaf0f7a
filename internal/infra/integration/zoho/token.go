package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/automatedtaxcredits/intake-api/internal/entity"
)

// AuthScheme is the Authorization scheme Zoho expects instead of Bearer.
const AuthScheme = "Zoho-oauthtoken"

// defaultTokenLifetime applies when the exchange omits expires_in; Zoho
// access tokens live one hour.
const defaultTokenLifetime = time.Hour

// refreshEarly renews the token this long before Zoho says it expires.
const refreshEarly = 60 * time.Second

type Credentials struct {
	RefreshToken string
	ClientID     string
	ClientSecret string
	GrantType    string
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	APIDomain   string `json:"api_domain"`
	TokenType   string `json:"token_type"`
	Error       string `json:"error"`
}

// refreshSource performs one refresh-token exchange per Token call.
type refreshSource struct {
	tokenURL   string
	creds      Credentials
	httpClient *http.Client
	logger     *zap.Logger
}

// NewTokenSource returns a cached source that exchanges the refresh token
// only when the previous access token is about to expire. Concurrent callers
// share one exchange.
func NewTokenSource(accountsURL string, creds Credentials, httpClient *http.Client, logger *zap.Logger) oauth2.TokenSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	src := &refreshSource{
		tokenURL:   strings.TrimRight(accountsURL, "/") + "/oauth/v2/token",
		creds:      creds,
		httpClient: httpClient,
		logger:     logger,
	}
	return oauth2.ReuseTokenSourceWithExpiry(nil, src, refreshEarly)
}

func (s *refreshSource) Token() (*oauth2.Token, error) {
	// oauth2.TokenSource carries no context; the client timeout bounds the call.
	tok, err := s.exchange(context.Background())
	if err != nil {
		s.logger.Error("❌ zoho token exchange failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", entity.ErrUnableToGetToken, err)
	}

	s.logger.Debug("🔄 zoho access token refreshed", zap.Time("expiry", tok.Expiry))
	return tok, nil
}

func (s *refreshSource) exchange(ctx context.Context) (*oauth2.Token, error) {
	form := url.Values{
		"refresh_token": {s.creds.RefreshToken},
		"client_id":     {s.creds.ClientID},
		"client_secret": {s.creds.ClientSecret},
		"grant_type":    {s.creds.GrantType},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var data tokenResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	// Zoho reports bad grants with 200 and an error field.
	if data.Error != "" {
		return nil, fmt.Errorf("zoho error: %s", data.Error)
	}
	if data.AccessToken == "" {
		return nil, fmt.Errorf("response has no access_token")
	}

	lifetime := defaultTokenLifetime
	if data.ExpiresIn > 0 {
		lifetime = time.Duration(data.ExpiresIn) * time.Second
	}
	return &oauth2.Token{
		AccessToken: data.AccessToken,
		TokenType:   AuthScheme,
		Expiry:      time.Now().Add(lifetime),
	}, nil
}
