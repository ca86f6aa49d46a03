package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/store"
	"github.com/fedgate/fedgate/pkg/cryptox"
	"github.com/fedgate/fedgate/pkg/idx"
)

var (
	// ErrMigrationFailed aborts startup; the schema must be current before
	// anything touches the store.
	ErrMigrationFailed = errors.New("seeder: migrations failed")

	// ErrAccountCreationFailed covers account writes during seeding and
	// provisioning. Fatal during seeding, per-request during provisioning.
	ErrAccountCreationFailed = errors.New("account creation failed")
)

// resettable is implemented by drivers that can drop the whole schema.
// Only the gated development reset looks for it.
type resettable interface {
	DropAll(ctx context.Context) error
}

// Seeder brings the store to its baseline state at startup: schema current,
// baseline accounts present, issuer configuration collections populated.
// Every phase is idempotent; running the seeder twice is a no-op.
type Seeder struct {
	Store  store.Store
	Logger *slog.Logger

	// Accounts, Clients, IdentityResources, and APIResources default to the
	// built-in definitions when nil.
	Accounts          []domain.SeedAccount
	Clients           []domain.Client
	IdentityResources []domain.IdentityResource
	APIResources      []domain.APIResource
}

func NewSeeder(st store.Store, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{Store: st, Logger: logger}
}

// Run executes the three seeding phases in order: migrate, seed accounts,
// seed configuration. Any error aborts startup.
func (s *Seeder) Run(ctx context.Context) error {
	if err := s.Store.ApplyMigrations(); err != nil {
		return fmt.Errorf("%w: %v", ErrMigrationFailed, err)
	}
	s.Logger.Info("database schema is current")

	if err := s.seedAccounts(ctx); err != nil {
		return err
	}
	return s.seedConfiguration(ctx)
}

// seedAccounts inserts each baseline account whose username does not already
// exist. The existence check is per-account, so a partially seeded store
// converges on repeat runs.
func (s *Seeder) seedAccounts(ctx context.Context) error {
	accounts := s.Accounts
	if accounts == nil {
		accounts = domain.DefaultSeedAccounts()
	}

	for _, acct := range accounts {
		_, err := s.Store.Users().GetUserByUsername(ctx, acct.Username)
		if err == nil {
			s.Logger.Debug("seed account already exists", slog.String("username", acct.Username))
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: lookup %s: %v", ErrAccountCreationFailed, acct.Username, err)
		}

		passHash, err := cryptox.HashPassword(acct.Password)
		if err != nil {
			return fmt.Errorf("%w: hash password for %s: %v", ErrAccountCreationFailed, acct.Username, err)
		}

		userID := idx.New().String()
		email, _ := domain.FindClaim(acct.Claims, domain.ClaimEmail)

		err = s.Store.WithTx(ctx, func(tx store.Tx) error {
			if err := tx.Users().CreateUser(ctx, domain.User{
				ID:           userID,
				Username:     acct.Username,
				Email:        email.Value,
				PasswordHash: passHash,
			}); err != nil {
				return err
			}
			return tx.Users().AddUserClaims(ctx, userID, acct.Claims)
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			// Another instance seeded this account between our check and
			// write. The account exists, which is all Run guarantees.
			s.Logger.Debug("seed account created concurrently", slog.String("username", acct.Username))
			continue
		}
		if err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrAccountCreationFailed, acct.Username, err)
		}

		s.Logger.Info("seeded baseline account",
			slog.String("username", acct.Username),
			slog.String("user_id", userID),
		)
	}
	return nil
}

// seedConfiguration fills each issuer configuration collection that is
// currently empty. The guard is per-collection: a non-empty collection is
// left untouched even if it differs from the defaults.
func (s *Seeder) seedConfiguration(ctx context.Context) error {
	clients := s.Clients
	if clients == nil {
		clients = domain.DefaultClients()
	}
	identityResources := s.IdentityResources
	if identityResources == nil {
		identityResources = domain.DefaultIdentityResources()
	}
	apiResources := s.APIResources
	if apiResources == nil {
		apiResources = domain.DefaultAPIResources()
	}

	if empty, err := s.Store.Clients().IsEmpty(ctx); err != nil {
		return fmt.Errorf("seeder: check clients: %w", err)
	} else if empty {
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			for _, c := range clients {
				c.ID = idx.New().String()
				if err := tx.Clients().CreateClient(ctx, c); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("seeder: seed clients: %w", err)
		}
		s.Logger.Info("seeded client registrations", slog.Int("count", len(clients)))
	}

	if empty, err := s.Store.IdentityResources().IsEmpty(ctx); err != nil {
		return fmt.Errorf("seeder: check identity resources: %w", err)
	} else if empty {
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			for _, r := range identityResources {
				r.ID = idx.New().String()
				if err := tx.IdentityResources().CreateIdentityResource(ctx, r); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("seeder: seed identity resources: %w", err)
		}
		s.Logger.Info("seeded identity resources", slog.Int("count", len(identityResources)))
	}

	if empty, err := s.Store.APIResources().IsEmpty(ctx); err != nil {
		return fmt.Errorf("seeder: check api resources: %w", err)
	} else if empty {
		err := s.Store.WithTx(ctx, func(tx store.Tx) error {
			for _, r := range apiResources {
				r.ID = idx.New().String()
				if err := tx.APIResources().CreateAPIResource(ctx, r); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("seeder: seed api resources: %w", err)
		}
		s.Logger.Info("seeded api resources", slog.Int("count", len(apiResources)))
	}

	return nil
}

// Reset drops the entire schema so the next Run starts from nothing. It is a
// development convenience behind an explicit opt-in; callers must refuse to
// invoke it in production and it never runs as part of normal startup.
func (s *Seeder) Reset(ctx context.Context) error {
	r, ok := s.Store.(resettable)
	if !ok {
		return errors.New("seeder: store driver does not support reset")
	}
	s.Logger.Warn("dropping all database tables")
	return r.DropAll(ctx)
}
