// Package issuer is the HTTP client for the local token issuer. After a code
// redemption succeeds, the redeemed pair is posted here so the issuer can
// finish establishing the federated session.
package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
)

var ErrCompletionRejected = errors.New("issuer: completion rejected")

const defaultTimeout = 10 * time.Second

type completeRequest struct {
	AccessToken string `json:"access_token"`
	IDToken     string `json:"id_token"`
}

type Client struct {
	// BaseURL of the issuer, e.g. http://localhost:5000.
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

// CompleteCodeRedemption posts the redeemed token pair to the issuer's
// federation completion endpoint. Any non-2xx response is a rejection.
func (c *Client) CompleteCodeRedemption(ctx context.Context, pair domain.TokenPair) error {
	body, err := json.Marshal(completeRequest{
		AccessToken: pair.AccessToken,
		IDToken:     pair.IDToken,
	})
	if err != nil {
		return fmt.Errorf("issuer: encode completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/v1/federation/complete", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("issuer: build completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCompletionRejected, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", ErrCompletionRejected, resp.StatusCode)
	}
	return nil
}
