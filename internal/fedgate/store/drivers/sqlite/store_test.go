package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/store"
	"github.com/fedgate/fedgate/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := NewStore("file:" + idx.New().String() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())
	return st
}

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestWithTxCommit(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, domain.User{ID: "u1", Username: "committed"})
	})
	require.NoError(t, err)

	_, err = st.Users().GetUserByUsername(ctx, "committed")
	require.NoError(t, err)
}

func TestWithTxRollback(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, domain.User{ID: "u1", Username: "rolled-back"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Users().GetUserByUsername(ctx, "rolled-back")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDropAll(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Users().CreateUser(ctx, domain.User{ID: "u1", Username: "gone"}))
	require.NoError(t, st.DropAll(ctx))
	require.NoError(t, st.ApplyMigrations())

	empty, err := st.Users().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)
}

func TestSplitList(t *testing.T) {
	require.Nil(t, splitList(""))
	require.Nil(t, splitList("   "))
	require.Equal(t, []string{"a", "b"}, splitList("a b"))
	require.Equal(t, []string{"a", "b"}, splitList(" a  b  a "))
}
