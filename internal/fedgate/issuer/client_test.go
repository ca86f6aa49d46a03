package issuer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
)

func TestCompleteCodeRedemption(t *testing.T) {
	var got completeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/federation/complete", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)

	err := c.CompleteCodeRedemption(context.Background(), domain.TokenPair{
		AccessToken: "at",
		IDToken:     "idt",
	})
	require.NoError(t, err)
	require.Equal(t, "at", got.AccessToken)
	require.Equal(t, "idt", got.IDToken)
}

func TestCompleteCodeRedemptionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)

	err := c.CompleteCodeRedemption(context.Background(), domain.TokenPair{AccessToken: "at"})
	require.ErrorIs(t, err, ErrCompletionRejected)
}

func TestCompleteCodeRedemptionNetworkFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", 0)

	err := c.CompleteCodeRedemption(context.Background(), domain.TokenPair{AccessToken: "at"})
	require.ErrorIs(t, err, ErrCompletionRejected)
}
