package domain

import "time"

// Client is a registered client application in the issuer's configuration
// store.
type Client struct {
	ID           string
	ClientID     string // unique natural key
	Name         string
	SecretHash   string // argon2 encoded; empty for public clients
	GrantTypes   []string
	RedirectURIs []string
	Scopes       []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IdentityResource is a scope of identity data (openid, profile, ...) exposed
// by the issuer.
type IdentityResource struct {
	ID          string
	Name        string // unique natural key
	DisplayName string
	UserClaims  []string
	CreatedAt   time.Time
}

// APIResource is a protected API the issuer can mint access tokens for.
type APIResource struct {
	ID          string
	Name        string // unique natural key
	DisplayName string
	Scopes      []string
	UserClaims  []string
	CreatedAt   time.Time
}

// Grant is a row in the issuer's operational store (codes, tokens, consents).
// The issuer writes these; we only migrate the table and purge expired rows.
type Grant struct {
	Key       string // unique natural key
	Type      string
	SubjectID string
	ClientID  string
	Data      string
	ExpiresAt time.Time
	CreatedAt time.Time
}
