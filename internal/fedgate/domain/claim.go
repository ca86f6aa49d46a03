package domain

// Claim is a typed key/value assertion about an identity.
type Claim struct {
	Type  string
	Value string
}

// Directory-sourced claim types. These mirror the upstream directory's field
// names rather than the OIDC registered claims below, because downstream
// consumers key off the directory spelling.
const (
	ClaimCity        = "City"
	ClaimCompanyName = "CompanyName"
	ClaimCountry     = "Country"
	ClaimJobTitle    = "JobTitle"
)

// OIDC standard claim types used for seed accounts and id_token filtering.
const (
	ClaimName          = "name"
	ClaimGivenName     = "given_name"
	ClaimFamilyName    = "family_name"
	ClaimEmail         = "email"
	ClaimEmailVerified = "email_verified"
	ClaimWebSite       = "website"
	ClaimAddress       = "address"
	ClaimLocation      = "location"
)

// FindClaim returns the first claim with the given type, or false when absent.
// Claim sets are not deduplicated by type; callers must avoid re-adding.
func FindClaim(claims []Claim, claimType string) (Claim, bool) {
	for _, c := range claims {
		if c.Type == claimType {
			return c, true
		}
	}
	return Claim{}, false
}
