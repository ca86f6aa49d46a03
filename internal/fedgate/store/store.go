package store

import (
	"context"
	"errors"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable: accounts on one side, the issuer's configuration and operational
// collections on the other.
type Store interface {
	Users() Users
	Clients() Clients
	IdentityResources() IdentityResources
	APIResources() APIResources
	Grants() Grants

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername looks an account up by its natural key. Seeding and
	// provisioning use this as their existence check.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// AddUserClaims attaches claims to an existing user. No dedup by type.
	AddUserClaims(ctx context.Context, userID string, claims []domain.Claim) error

	// ListUserClaims returns a user's claims in insertion order.
	ListUserClaims(ctx context.Context, userID string) ([]domain.Claim, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type Clients interface {
	// GetClientByClientID fetches a registered client by its client_id.
	GetClientByClientID(ctx context.Context, clientID string) (domain.Client, error)

	// ListClients returns all clients ordered by creation date (newest first).
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts a new client registration.
	CreateClient(ctx context.Context, c domain.Client) error

	// IsEmpty returns true if there are no clients.
	IsEmpty(ctx context.Context) (bool, error)
}

type IdentityResources interface {
	CreateIdentityResource(ctx context.Context, r domain.IdentityResource) error
	ListIdentityResources(ctx context.Context) ([]domain.IdentityResource, error)
	IsEmpty(ctx context.Context) (bool, error)
}

type APIResources interface {
	CreateAPIResource(ctx context.Context, r domain.APIResource) error
	ListAPIResources(ctx context.Context) ([]domain.APIResource, error)
	IsEmpty(ctx context.Context) (bool, error)
}

// Grants is the issuer's operational collection. The issuer collaborator
// writes grants during normal operation; we own the schema and the cleanup.
type Grants interface {
	CreateGrant(ctx context.Context, g domain.Grant) error
	GetGrantByKey(ctx context.Context, key string) (domain.Grant, error)
	DeleteGrant(ctx context.Context, key string) error

	// DeleteExpiredGrants is housekeeping (the issuer's token cleanup).
	DeleteExpiredGrants(ctx context.Context) error
}
