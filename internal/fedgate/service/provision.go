package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/store"
	"github.com/fedgate/fedgate/pkg/slogx"
)

// ProvisionUser materialises an external identity as a local account. An
// existing account with the same username is returned as-is; otherwise the
// user and its claims are created atomically. Losing a concurrent create race
// is handled by re-reading the winner's row.
func (s *FederationService) ProvisionUser(ctx context.Context, ext domain.ExternalResult) (domain.User, error) {
	l := slogx.FromContext(ctx)

	fu := s.BuildFederatedUser(ctx, ext)

	existing, err := s.Store.Users().GetUserByUsername(ctx, fu.User.Username)
	if err == nil {
		l.Debug("external identity already provisioned",
			slog.String("user_id", existing.ID))
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, fmt.Errorf("%w: %v", ErrAccountCreationFailed, err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, fu.User); err != nil {
			return err
		}
		return tx.Users().AddUserClaims(ctx, fu.User.ID, fu.Claims)
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return s.Store.Users().GetUserByUsername(ctx, fu.User.Username)
	}
	if err != nil {
		l.Error("failed to provision external identity",
			slog.String("username", fu.User.Username),
			slog.Any("error", err),
		)
		return domain.User{}, fmt.Errorf("%w: %v", ErrAccountCreationFailed, err)
	}

	l.Info("provisioned external identity",
		slog.String("user_id", fu.User.ID),
		slog.Int("claims", len(fu.Claims)),
	)
	return fu.User, nil
}
