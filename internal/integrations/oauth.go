package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/apexai-labs/apex-assistant-svc/internal/config"
)

// TokenResponse is the provider's token-exchange payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	Scope        string `json:"scope,omitempty"`
}

// ProbeResult records the outcome of the post-connect test call.
type ProbeResult struct {
	Success  bool   `json:"success"`
	UserID   string `json:"user_id,omitempty"`
	Error    string `json:"error,omitempty"`
	TestedAt string `json:"tested_at"`
}

var tokenURLs = map[string]string{
	"salesforce":   "https://login.salesforce.com/services/oauth2/token",
	"microsoft365": "https://login.microsoftonline.com/common/oauth2/v2.0/token",
	"google":       "https://oauth2.googleapis.com/token",
	"slack":        "https://slack.com/api/oauth.v2.access",
	"zoom":         "https://zoom.us/oauth/token",
	"jira":         "https://auth.atlassian.com/oauth/token",
}

var probeURLs = map[string]string{
	"salesforce":   "https://mycompany.salesforce.com/services/data/v60.0/sobjects/",
	"microsoft365": "https://graph.microsoft.com/v1.0/me",
	"google":       "https://www.googleapis.com/oauth2/v2/userinfo",
	"slack":        "https://slack.com/api/auth.test",
	"zoom":         "https://api.zoom.us/v2/users/me",
	"jira":         "https://api.atlassian.com/oauth/token/accessible-resources",
}

// OAuthClient handles the authorization-code exchange and the one-shot
// integration probe against a connected platform.
type OAuthClient struct {
	baseURL   string
	creds     config.OAuthCredentials
	tokenURLs map[string]string
	probeURLs map[string]string
	client    *http.Client
	logger    *slog.Logger
}

func NewOAuthClient(baseURL string, creds config.OAuthCredentials, logger *slog.Logger) *OAuthClient {
	return &OAuthClient{
		baseURL:   baseURL,
		creds:     creds,
		tokenURLs: tokenURLs,
		probeURLs: probeURLs,
		logger:    logger,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ExchangeCode trades an authorization code for tokens at the platform's
// token endpoint.
func (c *OAuthClient) ExchangeCode(ctx context.Context, platform, code string) (*TokenResponse, error) {
	tokenURL, ok := c.tokenURLs[platform]
	if !ok {
		return nil, fmt.Errorf("unsupported platform: %s", platform)
	}

	clientID, clientSecret := c.creds.ClientCredentials(platform)

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"code":          {code},
		"redirect_uri":  {c.baseURL + "/api/integrations/callback/" + platform},
	}

	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed for %s: %d - %s", platform, resp.StatusCode, string(body))
	}

	var tokens TokenResponse
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("token response for %s has no access token", platform)
	}

	return &tokens, nil
}

// Probe makes one authenticated GET against the platform's userinfo
// endpoint to verify the new connection. Failures are reported, not
// fatal.
func (c *OAuthClient) Probe(ctx context.Context, platform, accessToken string) ProbeResult {
	testedAt := time.Now().UTC().Format(time.RFC3339)

	endpoint, ok := c.probeURLs[platform]
	if !ok {
		return ProbeResult{Success: false, Error: "no test endpoint configured", TestedAt: testedAt}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return ProbeResult{Success: false, Error: err.Error(), TestedAt: testedAt}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return ProbeResult{Success: false, Error: err.Error(), TestedAt: testedAt}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ProbeResult{Success: false, Error: fmt.Sprintf("HTTP %d", resp.StatusCode), TestedAt: testedAt}
	}

	var userInfo struct {
		ID     string `json:"id"`
		Sub    string `json:"sub"`
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return ProbeResult{Success: true, TestedAt: testedAt}
	}

	userID := userInfo.ID
	if userID == "" {
		userID = userInfo.Sub
	}
	if userID == "" {
		userID = userInfo.UserID
	}

	return ProbeResult{Success: true, UserID: userID, TestedAt: testedAt}
}
