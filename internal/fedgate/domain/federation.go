package domain

// AuthorizationCodeMessage is the inbound protocol message received on the
// identity provider's code-receipt callback. Both fields are required; the
// code is single-use by protocol contract.
type AuthorizationCodeMessage struct {
	Code    string
	IDToken string
}

// TokenPair is the output of the upstream code redemption. AccessToken may be
// empty when exchange is disabled (reduced-trust mode); IDToken is always the
// unmodified inbound id_token.
type TokenPair struct {
	AccessToken string
	IDToken     string
}

// ExternalResult is the already-authenticated outcome of an upstream sign-in,
// carrying the tokens the authentication layer cached for the session.
type ExternalResult struct {
	Subject string
	Tokens  map[string]string
}

// TokenValue returns the cached token with the given name, or "" when the
// session holds none (e.g. client-credentials-only sign-in).
func (r ExternalResult) TokenValue(name string) string {
	return r.Tokens[name]
}

// FederatedUser is the composite handed to account provisioning: the local
// user derived from filtered id_token claims plus any directory claims.
// Claims never contain empty values; absent source fields are omitted.
type FederatedUser struct {
	User   User
	Claims []Claim
}
