package service

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
)

func TestFilterIDTokenClaims(t *testing.T) {
	idToken := makeIDToken(t, jwt.MapClaims{
		"name":           "Alice Smith",
		"given_name":     "Alice",
		"family_name":    "Smith",
		"email":          "alice@example.com",
		"email_verified": true,
		"website":        "http://alice.com",
		"iss":            "https://login.example.com",
		"aud":            "mvc",
		"nonce":          "abc123",
	})

	claims := FilterIDTokenClaims(idToken)
	require.Equal(t, []domain.Claim{
		{Type: domain.ClaimName, Value: "Alice Smith"},
		{Type: domain.ClaimGivenName, Value: "Alice"},
		{Type: domain.ClaimFamilyName, Value: "Smith"},
		{Type: domain.ClaimEmail, Value: "alice@example.com"},
		{Type: domain.ClaimEmailVerified, Value: "true"},
		{Type: domain.ClaimWebSite, Value: "http://alice.com"},
	}, claims)
}

func TestFilterIDTokenClaimsPartial(t *testing.T) {
	idToken := makeIDToken(t, jwt.MapClaims{"email": "x@y.z"})

	claims := FilterIDTokenClaims(idToken)
	require.Equal(t, []domain.Claim{{Type: domain.ClaimEmail, Value: "x@y.z"}}, claims)
}

func TestFilterIDTokenClaimsMalformed(t *testing.T) {
	require.Empty(t, FilterIDTokenClaims(""))
	require.Empty(t, FilterIDTokenClaims("not-a-jwt"))
	require.Empty(t, FilterIDTokenClaims("a.b.c"))
}
