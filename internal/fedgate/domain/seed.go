package domain

// SeedAccount is a baseline local account inserted at startup when no account
// with the same username exists.
type SeedAccount struct {
	Username string
	Password string
	Claims   []Claim
}

// DefaultSeedAccounts returns the fixed baseline identity set. These accounts
// are a correctness precondition for first run; the seeder treats a failure to
// create them as fatal.
func DefaultSeedAccounts() []SeedAccount {
	return []SeedAccount{
		{
			Username: "alice",
			Password: "Pass123$",
			Claims: []Claim{
				{Type: ClaimName, Value: "Alice Smith"},
				{Type: ClaimGivenName, Value: "Alice"},
				{Type: ClaimFamilyName, Value: "Smith"},
				{Type: ClaimEmail, Value: "AliceSmith@email.com"},
				{Type: ClaimEmailVerified, Value: "true"},
				{Type: ClaimWebSite, Value: "http://alice.com"},
				{Type: ClaimAddress, Value: `{"street_address":"One Hacker Way","locality":"Heidelberg","postal_code":69118,"country":"Germany"}`},
			},
		},
		{
			Username: "bob",
			Password: "Pass123$",
			Claims: []Claim{
				{Type: ClaimName, Value: "Bob Smith"},
				{Type: ClaimGivenName, Value: "Bob"},
				{Type: ClaimFamilyName, Value: "Smith"},
				{Type: ClaimEmail, Value: "BobSmith@email.com"},
				{Type: ClaimEmailVerified, Value: "true"},
				{Type: ClaimWebSite, Value: "http://bob.com"},
				{Type: ClaimAddress, Value: `{"street_address":"One Hacker Way","locality":"Heidelberg","postal_code":69118,"country":"Germany"}`},
				{Type: ClaimLocation, Value: "somewhere"},
			},
		},
	}
}

// DefaultClients returns the baseline client registrations for the issuer's
// configuration store. Inserted only when the clients collection is empty; an
// operator who wants different definitions changes them out-of-band.
func DefaultClients() []Client {
	return []Client{
		{
			ClientID:     "mvc",
			Name:         "MVC Admin Portal",
			GrantTypes:   []string{"authorization_code", "refresh_token"},
			RedirectURIs: []string{"http://localhost:5000/signin-oidc"},
			Scopes:       []string{"openid", "profile", "email", "api1"},
		},
	}
}

// DefaultIdentityResources returns the baseline identity resource definitions.
func DefaultIdentityResources() []IdentityResource {
	return []IdentityResource{
		{Name: "openid", DisplayName: "Your user identifier", UserClaims: []string{"sub"}},
		{Name: "profile", DisplayName: "User profile", UserClaims: []string{
			ClaimName, ClaimGivenName, ClaimFamilyName, ClaimWebSite, ClaimAddress,
		}},
		{Name: "email", DisplayName: "Your email address", UserClaims: []string{
			ClaimEmail, ClaimEmailVerified,
		}},
	}
}

// DefaultAPIResources returns the baseline API resource definitions.
func DefaultAPIResources() []APIResource {
	return []APIResource{
		{
			Name:        "api1",
			DisplayName: "Demo API",
			Scopes:      []string{"api1"},
			UserClaims:  []string{ClaimName, ClaimEmail},
		},
	}
}
