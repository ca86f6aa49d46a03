package sqlite

import (
	"context"
	"time"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
)

type identityResourcesRepo struct {
	db dbtx
}

func (r *identityResourcesRepo) CreateIdentityResource(ctx context.Context, res domain.IdentityResource) error {
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identity_resources (id, name, display_name, user_claims, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		res.ID, res.Name, res.DisplayName, joinList(res.UserClaims), res.CreatedAt)
	return mapConflict(err)
}

func (r *identityResourcesRepo) ListIdentityResources(ctx context.Context) ([]domain.IdentityResource, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, display_name, user_claims, created_at FROM identity_resources ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []domain.IdentityResource
	for rows.Next() {
		var (
			res        domain.IdentityResource
			userClaims string
		)
		if err := rows.Scan(&res.ID, &res.Name, &res.DisplayName, &userClaims, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.UserClaims = splitList(userClaims)
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *identityResourcesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM identity_resources`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

type apiResourcesRepo struct {
	db dbtx
}

func (r *apiResourcesRepo) CreateAPIResource(ctx context.Context, res domain.APIResource) error {
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO api_resources (id, name, display_name, scopes, user_claims, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		res.ID, res.Name, res.DisplayName, joinList(res.Scopes), joinList(res.UserClaims), res.CreatedAt)
	return mapConflict(err)
}

func (r *apiResourcesRepo) ListAPIResources(ctx context.Context) ([]domain.APIResource, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, display_name, scopes, user_claims, created_at FROM api_resources ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []domain.APIResource
	for rows.Next() {
		var (
			res        domain.APIResource
			scopes     string
			userClaims string
		)
		if err := rows.Scan(&res.ID, &res.Name, &res.DisplayName, &scopes, &userClaims, &res.CreatedAt); err != nil {
			return nil, err
		}
		res.Scopes = splitList(scopes)
		res.UserClaims = splitList(userClaims)
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *apiResourcesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM api_resources`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
