package service

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
)

// idTokenClaimAllowlist is the fixed set of id_token claims carried over to a
// provisioned account, in the order they are emitted. Everything else in the
// token (protocol claims, provider internals) is dropped.
var idTokenClaimAllowlist = []string{
	domain.ClaimName,
	domain.ClaimGivenName,
	domain.ClaimFamilyName,
	domain.ClaimEmail,
	domain.ClaimEmailVerified,
	domain.ClaimWebSite,
}

// FilterIDTokenClaims extracts the allowlisted identity claims from an
// id_token payload. The token is decoded, not validated: signature checking
// happened upstream at the provider and again at the issuer. Malformed or
// empty tokens yield no claims.
func FilterIDTokenClaims(idToken string) []domain.Claim {
	if idToken == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return nil
	}

	var out []domain.Claim
	for _, typ := range idTokenClaimAllowlist {
		raw, ok := claims[typ]
		if !ok {
			continue
		}
		val := stringifyClaim(raw)
		if val == "" {
			continue
		}
		out = append(out, domain.Claim{Type: typ, Value: val})
	}
	return out
}

func stringifyClaim(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}
