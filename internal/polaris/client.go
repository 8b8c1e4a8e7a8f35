// Package polaris is a minimal client for the catalog server's OAuth
// and management endpoints.
package polaris

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

	"github.com/sirupsen/logrus"

	"github.com/dataloomhq/polaris-bootstrap/internal/model"
)

const (
	tokenPath      = "/api/catalog/v1/oauth/tokens"
	managementBase = "/api/management/v1"

	scopePrincipalRoleAll = "PRINCIPAL_ROLE:ALL"
)

// Client talks to one catalog server. Authenticate must be called
// before any management method.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates a client for the server at baseURL
// (scheme://host:port, no trailing path).
func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// Authenticate exchanges the root credential pair for the bearer token
// used by all subsequent management calls.
func (c *Client) Authenticate(ctx context.Context, creds model.Credentials) error {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", creds.ClientID)
	form.Set("client_secret", creds.ClientSecret)
	form.Set("scope", scopePrincipalRoleAll)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build token request: %w", err)
	}

	// The token endpoint authenticates the raw pair joined by a colon
	// in the bearer header. This is not standard basic auth and the
	// server rejects the encoded form, so the header must stay exactly
	// like this.
	req.Header.Set("Authorization", "Bearer "+creds.ClientID+":"+creds.ClientSecret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &apiError{Status: resp.StatusCode, Body: truncateBody(body)}
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("token response has no access_token")
	}

	c.token = tok.AccessToken
	return nil
}

// do issues one management API request and returns the HTTP status it
// got. A status of 400 or above comes back as an apiError carrying the
// response body; transport failures return status 0.
func (c *Client) do(ctx context.Context, method, path string, payload, result any) (int, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, fmt.Errorf("failed to encode payload: %w", err)
		}
		c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug(string(data))
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+managementBase+path, body)
	if err != nil {
		return 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, &apiError{Status: resp.StatusCode, Body: truncateBody(data)}
	}

	if result != nil && len(data) > 0 {
		if err := json.Unmarshal(data, result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// apiError is a management API response with an error status
type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// truncateBody keeps error messages readable when the server returns
// a large body
func truncateBody(data []byte) string {
	const max = 512
	s := strings.TrimSpace(string(data))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
