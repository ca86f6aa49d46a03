// Package upstream redeems authorization codes against the external OpenID
// Connect provider's token endpoint using a confidential client.
package upstream

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/obs"
)

// ErrTokenExchangeFailed covers any network, protocol, or response-shape
// failure during code redemption. Fatal for the current login attempt, not
// for the process; the code is single-use so the whole flow must restart.
var ErrTokenExchangeFailed = errors.New("upstream: token exchange failed")

// DefaultScopes is the fixed scope list requested during code redemption:
// the OIDC basics plus the two directory-read scopes the claims enricher
// needs for its delegated /me call.
var DefaultScopes = []string{
	oidc.ScopeOpenID,
	"profile",
	"email",
	oidc.ScopeOfflineAccess,
	"user.readbasic.all",
	"user.read",
}

const defaultTimeout = 15 * time.Second

// Config is fixed deployment configuration for the confidential client.
// It is injected at construction; nothing here is read from request input.
type Config struct {
	// Authority is the provider's issuer URL; its token endpoint is found
	// through OIDC discovery unless TokenURL overrides it.
	Authority    string
	ClientID     string
	ClientSecret string
	RedirectURI  string

	// Scopes defaults to DefaultScopes when empty.
	Scopes []string

	// TokenURL skips discovery when set. Useful for providers without a
	// discovery document and for tests.
	TokenURL string

	// Disabled turns RedeemCode into a pass-through that returns an empty
	// access token. Reduced-trust mode: the directory enricher will have no
	// delegated token to work with. Never the silent default.
	Disabled bool

	Timeout time.Duration
}

type Exchanger struct {
	cfg    Config
	oauth  *oauth2.Config
	client *http.Client
	logger *slog.Logger
}

// NewExchanger builds the confidential client. Unless cfg.TokenURL is set it
// performs OIDC discovery against cfg.Authority, so it needs network access
// at construction time.
func NewExchanger(ctx context.Context, cfg Config, logger *slog.Logger) (*Exchanger, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = DefaultScopes
	}

	client := &http.Client{Timeout: cfg.Timeout}

	if cfg.Disabled {
		logger.Warn("token exchange disabled: reduced-trust mode, access tokens will be empty")
		return &Exchanger{cfg: cfg, client: client, logger: logger}, nil
	}

	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURI == "" {
		return nil, errors.New("upstream: client id, client secret, and redirect uri are required")
	}

	var endpoint oauth2.Endpoint
	if cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{TokenURL: cfg.TokenURL}
	} else {
		if cfg.Authority == "" {
			return nil, errors.New("upstream: authority is required when no token url is set")
		}
		provider, err := oidc.NewProvider(oidc.ClientContext(ctx, client), cfg.Authority)
		if err != nil {
			return nil, fmt.Errorf("upstream: discover authority endpoints: %w", err)
		}
		endpoint = provider.Endpoint()
	}

	return &Exchanger{
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       cfg.Scopes,
			Endpoint:     endpoint,
		},
		client: client,
		logger: logger,
	}, nil
}

// RedeemCode exchanges a single-use authorization code for tokens. The
// id_token is passed through unchanged from the inbound message; validating
// it is the token issuer's job, not ours.
func (e *Exchanger) RedeemCode(ctx context.Context, msg domain.AuthorizationCodeMessage) (domain.TokenPair, error) {
	if strings.TrimSpace(msg.Code) == "" {
		return domain.TokenPair{}, fmt.Errorf("%w: empty authorization code", ErrTokenExchangeFailed)
	}

	if e.cfg.Disabled {
		return domain.TokenPair{AccessToken: "", IDToken: msg.IDToken}, nil
	}

	// Bound the exchange with our own client (timeout included).
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.client)

	start := time.Now()
	tok, err := e.oauth.Exchange(ctx, msg.Code,
		// AAD-style providers expect the scope list on the token request too.
		oauth2.SetAuthURLParam("scope", strings.Join(e.cfg.Scopes, " ")),
	)
	if err != nil {
		obs.ObserveTokenExchange(time.Since(start), "failure")
		e.logger.Error("code redemption failed", slog.Any("error", err))
		return domain.TokenPair{}, fmt.Errorf("%w: %v", ErrTokenExchangeFailed, err)
	}
	obs.ObserveTokenExchange(time.Since(start), "success")
	if tok.AccessToken == "" {
		return domain.TokenPair{}, fmt.Errorf("%w: token response missing access_token", ErrTokenExchangeFailed)
	}

	return domain.TokenPair{AccessToken: tok.AccessToken, IDToken: msg.IDToken}, nil
}
