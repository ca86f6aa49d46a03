package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
	"github.com/fedgate/fedgate/internal/fedgate/store"
)

func TestGrantsRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	g := domain.Grant{
		Key:       "grant-key",
		Type:      "refresh_token",
		SubjectID: "u1",
		ClientID:  "mvc",
		Data:      `{"token":"opaque"}`,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, st.Grants().CreateGrant(ctx, g))

	got, err := st.Grants().GetGrantByKey(ctx, "grant-key")
	require.NoError(t, err)
	require.Equal(t, g.Type, got.Type)
	require.Equal(t, g.SubjectID, got.SubjectID)
	require.Equal(t, g.Data, got.Data)

	require.NoError(t, st.Grants().DeleteGrant(ctx, "grant-key"))

	_, err = st.Grants().GetGrantByKey(ctx, "grant-key")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteExpiredGrants(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, st.Grants().CreateGrant(ctx, domain.Grant{
		Key: "expired", Type: "refresh_token", ExpiresAt: now.Add(-time.Hour),
	}))
	require.NoError(t, st.Grants().CreateGrant(ctx, domain.Grant{
		Key: "live", Type: "refresh_token", ExpiresAt: now.Add(time.Hour),
	}))

	require.NoError(t, st.Grants().DeleteExpiredGrants(ctx))

	_, err := st.Grants().GetGrantByKey(ctx, "expired")
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = st.Grants().GetGrantByKey(ctx, "live")
	require.NoError(t, err)
}
