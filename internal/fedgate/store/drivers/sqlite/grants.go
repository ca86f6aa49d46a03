package sqlite

import (
	"context"
	"time"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
)

type grantsRepo struct {
	db dbtx
}

func (r *grantsRepo) CreateGrant(ctx context.Context, g domain.Grant) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO persisted_grants (key, grant_type, subject_id, client_id, data, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		g.Key, g.Type, g.SubjectID, g.ClientID, g.Data, g.ExpiresAt, g.CreatedAt)
	return mapConflict(err)
}

func (r *grantsRepo) GetGrantByKey(ctx context.Context, key string) (domain.Grant, error) {
	var g domain.Grant
	err := r.db.QueryRowContext(ctx,
		`SELECT key, grant_type, subject_id, client_id, data, expires_at, created_at
		 FROM persisted_grants WHERE key = ?`, key).
		Scan(&g.Key, &g.Type, &g.SubjectID, &g.ClientID, &g.Data, &g.ExpiresAt, &g.CreatedAt)
	if err != nil {
		return domain.Grant{}, mapNotFound(err)
	}
	return g, nil
}

func (r *grantsRepo) DeleteGrant(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM persisted_grants WHERE key = ?`, key)
	return err
}

func (r *grantsRepo) DeleteExpiredGrants(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM persisted_grants WHERE expires_at < ?`, time.Now().UTC())
	return err
}
