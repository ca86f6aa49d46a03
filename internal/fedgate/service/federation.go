package service

import (
	"context"
	"log/slog"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/obs"
	"github.com/fedgate/fedgate/internal/fedgate/store"
	"github.com/fedgate/fedgate/pkg/idx"
	"github.com/fedgate/fedgate/pkg/slogx"
)

// CodeExchanger redeems an inbound authorization code against the external
// provider's token endpoint.
type CodeExchanger interface {
	RedeemCode(ctx context.Context, msg domain.AuthorizationCodeMessage) (domain.TokenPair, error)
}

// TokenIssuer hands the redeemed token pair to the local issuer so it can
// finish the federated sign-in. Called exactly once per successful exchange.
type TokenIssuer interface {
	CompleteCodeRedemption(ctx context.Context, pair domain.TokenPair) error
}

// ProfileSource enriches a delegated access token with directory claims.
// An empty token yields no claims and no error.
type ProfileSource interface {
	Claims(ctx context.Context, accessToken string) ([]domain.Claim, error)
}

// FederationService owns the external-login flow: redeem the code, complete
// the sign-in with the issuer, and build/provision local accounts for
// external identities.
type FederationService struct {
	Exchanger CodeExchanger
	Issuer    TokenIssuer
	Directory ProfileSource
	Store     store.Store
}

// CompleteLogin drives one callback round-trip. The issuer is only invoked
// after a successful exchange; an authorization code is single-use, so any
// failure here means the user has to restart the flow from the top.
func (s *FederationService) CompleteLogin(ctx context.Context, msg domain.AuthorizationCodeMessage) error {
	l := slogx.FromContext(ctx)

	pair, err := s.Exchanger.RedeemCode(ctx, msg)
	if err != nil {
		l.Error("authorization code redemption failed", slog.Any("error", err))
		obs.ObserveFederationLogin("exchange_failed")
		return err
	}

	if err := s.Issuer.CompleteCodeRedemption(ctx, pair); err != nil {
		l.Error("issuer rejected redeemed tokens", slog.Any("error", err))
		obs.ObserveFederationLogin("issuer_failed")
		return err
	}

	obs.ObserveFederationLogin("success")
	l.Info("federated login completed")
	return nil
}

// BuildFederatedUser shapes a local account from an external result. The
// username is the external email claim when present, otherwise a generated
// identifier. Directory enrichment is best-effort: a failed fetch degrades to
// an empty claim set rather than failing the login.
func (s *FederationService) BuildFederatedUser(ctx context.Context, ext domain.ExternalResult) domain.FederatedUser {
	l := slogx.FromContext(ctx)

	claims := FilterIDTokenClaims(ext.TokenValue("id_token"))

	dirClaims, err := s.Directory.Claims(ctx, ext.TokenValue("access_token"))
	if err != nil {
		l.Warn("directory enrichment failed, continuing without directory claims",
			slog.Any("error", err))
		obs.ObserveDirectoryFetchFailure()
		dirClaims = nil
	}
	claims = append(claims, dirClaims...)

	var email string
	username := idx.New().String()
	if c, ok := domain.FindClaim(claims, domain.ClaimEmail); ok && c.Value != "" {
		email = c.Value
		username = c.Value
	}

	return domain.FederatedUser{
		User: domain.User{
			ID:       idx.New().String(),
			Username: username,
			Email:    email,
		},
		Claims: claims,
	}
}
