package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/store"
	"github.com/fedgate/fedgate/internal/fedgate/store/drivers/sqlite"
	"github.com/fedgate/fedgate/pkg/cryptox"
	"github.com/fedgate/fedgate/pkg/idx"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "fedgate-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	code := m.Run()

	_ = os.Remove(pepperPath)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := sqlite.NewStore("file:" + idx.New().String() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

func TestSeederRun(t *testing.T) {
	st := newTestStore(t)
	seeder := NewSeeder(st, nil)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx))

	alice, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "AliceSmith@email.com", alice.Email)
	require.NoError(t, cryptox.VerifyPassword("Pass123$", alice.PasswordHash))

	aliceClaims, err := st.Users().ListUserClaims(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceClaims, 7)

	bob, err := st.Users().GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
	bobClaims, err := st.Users().ListUserClaims(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobClaims, 8)
	loc, ok := domain.FindClaim(bobClaims, domain.ClaimLocation)
	require.True(t, ok)
	require.Equal(t, "somewhere", loc.Value)

	clients, err := st.Clients().ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, "mvc", clients[0].ClientID)

	idents, err := st.IdentityResources().ListIdentityResources(ctx)
	require.NoError(t, err)
	require.Len(t, idents, 3)

	apis, err := st.APIResources().ListAPIResources(ctx)
	require.NoError(t, err)
	require.Len(t, apis, 1)
}

func TestSeederRunIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	seeder := NewSeeder(st, nil)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx))

	alice, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, seeder.Run(ctx))

	aliceAgain, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice.ID, aliceAgain.ID)

	claims, err := st.Users().ListUserClaims(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, claims, 7)

	clients, err := st.Clients().ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
}

func TestSeederLeavesNonEmptyCollectionsAlone(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ApplyMigrations())

	require.NoError(t, st.Clients().CreateClient(ctx, domain.Client{
		ID:       idx.New().String(),
		ClientID: "operator-client",
		Name:     "Operator Defined",
	}))

	seeder := NewSeeder(st, nil)
	require.NoError(t, seeder.Run(ctx))

	// clients collection was non-empty, so defaults were not added
	clients, err := st.Clients().ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.Equal(t, "operator-client", clients[0].ClientID)

	// the other collections were empty, so they still get their defaults
	idents, err := st.IdentityResources().ListIdentityResources(ctx)
	require.NoError(t, err)
	require.Len(t, idents, 3)
}

func TestSeederSkipsExistingAccounts(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, st.ApplyMigrations())

	require.NoError(t, st.Users().CreateUser(ctx, domain.User{
		ID:           idx.New().String(),
		Username:     "alice",
		PasswordHash: "pre-existing",
	}))

	seeder := NewSeeder(st, nil)
	require.NoError(t, seeder.Run(ctx))

	alice, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "pre-existing", alice.PasswordHash)

	// bob was still missing, so he gets seeded
	_, err = st.Users().GetUserByUsername(ctx, "bob")
	require.NoError(t, err)
}

func TestSeederReset(t *testing.T) {
	st := newTestStore(t)
	seeder := NewSeeder(st, nil)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx))
	require.NoError(t, seeder.Reset(ctx))

	// everything is gone; a fresh Run rebuilds from nothing
	require.NoError(t, seeder.Run(ctx))

	_, err := st.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
}
