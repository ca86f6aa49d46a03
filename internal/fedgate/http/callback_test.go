package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/service"
)

type fakeExchanger struct {
	pair  domain.TokenPair
	err   error
	calls int
	got   domain.AuthorizationCodeMessage
}

func (f *fakeExchanger) RedeemCode(_ context.Context, msg domain.AuthorizationCodeMessage) (domain.TokenPair, error) {
	f.calls++
	f.got = msg
	return f.pair, f.err
}

type fakeIssuer struct {
	err   error
	calls int
	got   domain.TokenPair
}

func (f *fakeIssuer) CompleteCodeRedemption(_ context.Context, pair domain.TokenPair) error {
	f.calls++
	f.got = pair
	return f.err
}

type fakeDirectory struct {
	claims []domain.Claim
	err    error
}

func (f *fakeDirectory) Claims(_ context.Context, accessToken string) ([]domain.Claim, error) {
	if accessToken == "" {
		return nil, nil
	}
	return f.claims, f.err
}

func newCallbackHandler(exch *fakeExchanger, issuer *fakeIssuer) *CallbackHandler {
	return &CallbackHandler{
		FederationService: &service.FederationService{
			Exchanger: exch,
			Issuer:    issuer,
		},
	}
}

func TestCallbackPost(t *testing.T) {
	exch := &fakeExchanger{pair: domain.TokenPair{AccessToken: "at", IDToken: "idt"}}
	issuer := &fakeIssuer{}
	h := newCallbackHandler(exch, issuer)

	form := url.Values{"code": {"the-code"}, "id_token": {"idt"}}
	req := httptest.NewRequest(http.MethodPost, "/signin-oidc", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/", rec.Header().Get("Location"))
	require.Equal(t, "the-code", exch.got.Code)
	require.Equal(t, "idt", exch.got.IDToken)
	require.Equal(t, 1, issuer.calls)
	require.Equal(t, domain.TokenPair{AccessToken: "at", IDToken: "idt"}, issuer.got)
}

func TestCallbackGet(t *testing.T) {
	exch := &fakeExchanger{pair: domain.TokenPair{AccessToken: "at"}}
	issuer := &fakeIssuer{}
	h := newCallbackHandler(exch, issuer)
	h.SuccessRedirect = "/welcome"

	req := httptest.NewRequest(http.MethodGet, "/signin-oidc?code=c&id_token=i", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/welcome", rec.Header().Get("Location"))
	require.Equal(t, "c", exch.got.Code)
}

func TestCallbackMissingCode(t *testing.T) {
	exch := &fakeExchanger{}
	issuer := &fakeIssuer{}
	h := newCallbackHandler(exch, issuer)

	req := httptest.NewRequest(http.MethodGet, "/signin-oidc", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/error", rec.Header().Get("Location"))
	require.Zero(t, exch.calls)
	require.Zero(t, issuer.calls)
}

func TestCallbackExchangeFailure(t *testing.T) {
	exch := &fakeExchanger{err: errors.New("provider rejected code")}
	issuer := &fakeIssuer{}
	h := newCallbackHandler(exch, issuer)
	h.ErrorRedirect = "/login-failed"

	req := httptest.NewRequest(http.MethodGet, "/signin-oidc?code=bad", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/login-failed", rec.Header().Get("Location"))
	require.Zero(t, issuer.calls)
}

func TestCallbackIssuerFailure(t *testing.T) {
	exch := &fakeExchanger{pair: domain.TokenPair{AccessToken: "at"}}
	issuer := &fakeIssuer{err: errors.New("issuer down")}
	h := newCallbackHandler(exch, issuer)

	req := httptest.NewRequest(http.MethodGet, "/signin-oidc?code=c", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Equal(t, "/error", rec.Header().Get("Location"))
}
