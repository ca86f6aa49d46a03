package http

import (
	"net/http"
	"strings"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/service"
	"github.com/fedgate/fedgate/pkg/slogx"
)

const (
	defaultSuccessRedirect = "/"
	defaultErrorRedirect   = "/error"
)

// CallbackHandler serves the external provider's sign-in callback. The
// provider sends the browser here with a single-use authorization code; we
// redeem it, hand the tokens to the issuer, and redirect the browser.
type CallbackHandler struct {
	FederationService *service.FederationService

	SuccessRedirect string
	ErrorRedirect   string
}

// ServeHTTP godoc
//
//	@Summary		External Sign-In Callback
//	@Description	Completes a federated login. The external provider redirects the browser here with an authorization code (query parameters on GET, form fields on POST). The code is redeemed upstream and the resulting tokens are handed to the local issuer.
//	@Description	On success the browser is redirected to the configured post-login location; on any failure it is redirected to the error page. The code is single-use, so a failed attempt requires restarting the sign-in flow.
//	@Tags			Federation
//	@Accept			application/x-www-form-urlencoded
//	@Param			code		query	string	false	"Authorization code (GET binding)"
//	@Param			id_token	query	string	false	"Provider id_token (GET binding)"
//	@Success		302	{string}	string	"redirect to post-login or error location"
//	@Router			/signin-oidc [post]
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	// ParseForm merges the query string and any urlencoded body, which covers
	// both the GET and form_post response modes.
	if err := r.ParseForm(); err != nil {
		log.Warn("malformed callback request", "err", err)
		h.redirectError(w, r)
		return
	}

	msg := domain.AuthorizationCodeMessage{
		Code:    strings.TrimSpace(r.Form.Get("code")),
		IDToken: strings.TrimSpace(r.Form.Get("id_token")),
	}
	if msg.Code == "" {
		log.Warn("callback missing authorization code")
		h.redirectError(w, r)
		return
	}

	if err := h.FederationService.CompleteLogin(ctx, msg); err != nil {
		h.redirectError(w, r)
		return
	}

	target := h.SuccessRedirect
	if target == "" {
		target = defaultSuccessRedirect
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *CallbackHandler) redirectError(w http.ResponseWriter, r *http.Request) {
	target := h.ErrorRedirect
	if target == "" {
		target = defaultErrorRedirect
	}
	http.Redirect(w, r, target, http.StatusFound)
}
