package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const selectAccountColumns = `id, lead_id, company, industry, value, owner, status, created_at`

type Account struct {
	ID        uuid.UUID
	LeadID    *uuid.UUID
	Company   string
	Industry  string
	Value     string
	Owner     string
	Status    string
	CreatedAt time.Time
}

type CreateParams struct {
	LeadID   *uuid.UUID
	Company  string
	Industry string
	Value    string
	Owner    string
	Status   string
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// CreateTx inserts the account inside tx. A second account for the same
// lead fails with a unique violation on lead_id.
func (r *Repository) CreateTx(ctx context.Context, tx pgx.Tx, params CreateParams) (Account, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO accounts (lead_id, company, industry, value, owner, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+selectAccountColumns,
		params.LeadID, params.Company, params.Industry, params.Value, params.Owner, params.Status,
	)
	return scanAccount(row)
}

// List returns all accounts, newest first.
func (r *Repository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+selectAccountColumns+` FROM accounts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return accounts, nil
}

func scanAccount(row pgx.Row) (Account, error) {
	var account Account
	err := row.Scan(
		&account.ID, &account.LeadID, &account.Company, &account.Industry,
		&account.Value, &account.Owner, &account.Status, &account.CreatedAt,
	)
	return account, err
}
