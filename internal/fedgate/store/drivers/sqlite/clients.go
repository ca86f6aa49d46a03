package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fedgate/fedgate/internal/fedgate/domain"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, client_id, name, secret_hash, grant_types, redirect_uris, scopes, created_at, updated_at`

func (r *clientsRepo) GetClientByClientID(ctx context.Context, clientID string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE client_id = ?`, clientID)
	return scanClient(row)
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (id, client_id, name, secret_hash, grant_types, redirect_uris, scopes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ClientID, c.Name, mapStringNull(c.SecretHash),
		joinList(c.GrantTypes), joinList(c.RedirectURIs), joinList(c.Scopes),
		c.CreatedAt, c.UpdatedAt)
	return mapConflict(err)
}

func (r *clientsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanClient(row rowScanner) (domain.Client, error) {
	var (
		c            domain.Client
		secretHash   sql.NullString
		grantTypes   string
		redirectURIs string
		scopes       string
	)
	err := row.Scan(&c.ID, &c.ClientID, &c.Name, &secretHash,
		&grantTypes, &redirectURIs, &scopes, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	c.SecretHash = mapNullString(secretHash)
	c.GrantTypes = splitList(grantTypes)
	c.RedirectURIs = splitList(redirectURIs)
	c.Scopes = splitList(scopes)
	return c, nil
}
