// Package directory fetches user profiles from the external directory
// service and maps them into identity claims. Enrichment is best-effort:
// callers are expected to continue with an empty claim set on failure.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
)

// ErrDirectoryFetchFailed covers network failures and non-2xx responses from
// the directory's current-user endpoint.
var ErrDirectoryFetchFailed = errors.New("directory: profile fetch failed")

const (
	defaultTimeout = 10 * time.Second

	// maxResponseBodySize caps profile responses at 1 MiB.
	maxResponseBodySize = 1 << 20
)

// Profile is the subset of the directory's current-user response we consume.
// Field names follow the external API's own spelling; every field is
// optional.
type Profile struct {
	City        string `json:"city"`
	CompanyName string `json:"companyName"`
	Country     string `json:"country"`
	JobTitle    string `json:"jobTitle"`
}

type Client struct {
	// BaseURL of the directory API, e.g. https://graph.example.com/v1.0.
	BaseURL string

	HTTPClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// FetchProfile issues an authenticated GET to the directory's current-user
// resource. The access token must be non-empty; use Claims for the
// no-token short circuit.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (Profile, error) {
	if accessToken == "" {
		return Profile{}, fmt.Errorf("%w: access token required", ErrDirectoryFetchFailed)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/me", nil)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrDirectoryFetchFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrDirectoryFetchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrDirectoryFetchFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Profile{}, fmt.Errorf("%w: status %d", ErrDirectoryFetchFailed, resp.StatusCode)
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		return Profile{}, fmt.Errorf("%w: %v", ErrDirectoryFetchFailed, err)
	}
	return profile, nil
}

// MapToClaims emits one claim per present, non-empty profile field. Absent
// fields are omitted entirely, never represented as empty-string claims.
func MapToClaims(p Profile) []domain.Claim {
	var claims []domain.Claim
	if p.City != "" {
		claims = append(claims, domain.Claim{Type: domain.ClaimCity, Value: p.City})
	}
	if p.CompanyName != "" {
		claims = append(claims, domain.Claim{Type: domain.ClaimCompanyName, Value: p.CompanyName})
	}
	if p.Country != "" {
		claims = append(claims, domain.Claim{Type: domain.ClaimCountry, Value: p.Country})
	}
	if p.JobTitle != "" {
		claims = append(claims, domain.Claim{Type: domain.ClaimJobTitle, Value: p.JobTitle})
	}
	return claims
}

// Claims fetches and maps in one step. An empty access token is a valid,
// expected input (client-credentials-only sign-ins have no delegated token):
// no network call is made and no claims are returned.
func (c *Client) Claims(ctx context.Context, accessToken string) ([]domain.Claim, error) {
	if accessToken == "" {
		return nil, nil
	}
	profile, err := c.FetchProfile(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return MapToClaims(profile), nil
}
