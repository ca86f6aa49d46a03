package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/stretchr/testify/require"
)

func TestFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me", r.URL.Path)
		require.Equal(t, "Bearer delegated-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"city":"Heidelberg","jobTitle":"Engineer","displayName":"ignored"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)

	profile, err := c.FetchProfile(context.Background(), "delegated-token")
	require.NoError(t, err)
	require.Equal(t, "Heidelberg", profile.City)
	require.Equal(t, "Engineer", profile.JobTitle)
	require.Empty(t, profile.CompanyName)
	require.Empty(t, profile.Country)
}

func TestFetchProfileNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)

	_, err := c.FetchProfile(context.Background(), "expired-token")
	require.ErrorIs(t, err, ErrDirectoryFetchFailed)
}

func TestFetchProfileRequiresToken(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", 0)

	_, err := c.FetchProfile(context.Background(), "")
	require.ErrorIs(t, err, ErrDirectoryFetchFailed)
}

func TestMapToClaims(t *testing.T) {
	t.Run("emits only populated fields", func(t *testing.T) {
		claims := MapToClaims(Profile{City: "Brisbane", JobTitle: "Barkeep"})
		require.Equal(t, []domain.Claim{
			{Type: domain.ClaimCity, Value: "Brisbane"},
			{Type: domain.ClaimJobTitle, Value: "Barkeep"},
		}, claims)
	})

	t.Run("empty profile yields no claims", func(t *testing.T) {
		require.Empty(t, MapToClaims(Profile{}))
	})

	t.Run("full profile yields all four", func(t *testing.T) {
		claims := MapToClaims(Profile{
			City: "a", CompanyName: "b", Country: "c", JobTitle: "d",
		})
		require.Len(t, claims, 4)
	})
}

func TestClaimsEmptyTokenSkipsNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)

	claims, err := c.Claims(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, claims)
	require.Zero(t, calls.Load())
}

func TestClaimsFetchesAndMaps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"companyName":"ACME","country":"Germany"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 0)

	claims, err := c.Claims(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, []domain.Claim{
		{Type: domain.ClaimCompanyName, Value: "ACME"},
		{Type: domain.ClaimCountry, Value: "Germany"},
	}, claims)
}
