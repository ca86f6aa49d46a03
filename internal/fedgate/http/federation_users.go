package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/service"
	"github.com/fedgate/fedgate/pkg/httpx"
	"github.com/fedgate/fedgate/pkg/slogx"
)

// ProvisionRequest carries an external identity's redeemed tokens for
// account provisioning.
type ProvisionRequest struct {
	Subject string            `json:"subject"`
	Tokens  map[string]string `json:"tokens"`
}

// ProvisionResponse describes the provisioned (or pre-existing) account.
type ProvisionResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// FederationUsersHandler serves POST /v1/federation/users.
type FederationUsersHandler struct {
	FederationService *service.FederationService
}

// ServeHTTP godoc
//
//	@Summary		Provision External Identity
//	@Description	Creates a local account for an external identity from its redeemed tokens. The username is taken from the id_token's email claim when present, otherwise generated. Directory claims are attached best-effort. Idempotent: an already-provisioned identity returns the existing account.
//	@Tags			Federation
//	@Accept			json
//	@Produce		json
//	@Param			body	body		ProvisionRequest		true	"External identity tokens"
//	@Success		201		{object}	ProvisionResponse		"id, username, email"
//	@Failure		400		{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse		"error, error_description"
//	@Router			/v1/federation/users [post]
func (h *FederationUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "expected application/json",
		})
		return
	}

	var req ProvisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "malformed request body",
		})
		return
	}

	user, err := h.FederationService.ProvisionUser(ctx, domain.ExternalResult{
		Subject: req.Subject,
		Tokens:  req.Tokens,
	})
	if err != nil {
		log.Error("provisioning failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, httpx.ErrorResponse{
			Error: "server_error",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, ProvisionResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
}
