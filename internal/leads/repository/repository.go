package repository

import (
	"context"
	"errors"
	"fmt"

	"sales_portal_backend/internal/leads/domain"
	"sales_portal_backend/internal/leads/filter"

	accountsrepo "sales_portal_backend/internal/accounts/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound         = errors.New("lead not found")
	ErrAlreadyConverted = errors.New("lead already converted")
)

const selectLeadColumns = `id, name, company, industry, email, phone, match_score, status,
	company_size, location, feedback, created_at, last_updated`

// AccountCreator inserts the account produced by a conversion inside the
// caller's transaction.
type AccountCreator interface {
	CreateTx(ctx context.Context, tx pgx.Tx, params accountsrepo.CreateParams) (accountsrepo.Account, error)
}

type Repository struct {
	pool     *pgxpool.Pool
	accounts AccountCreator
}

func New(pool *pgxpool.Pool, accounts AccountCreator) *Repository {
	return &Repository{pool: pool, accounts: accounts}
}

type CreateLeadParams struct {
	Name        string
	Company     string
	Industry    string
	Email       string
	Phone       string
	MatchScore  int
	Status      domain.Status
	CompanySize string
	Location    string
	Feedback    []string
}

func (r *Repository) Create(ctx context.Context, params CreateLeadParams) (domain.Lead, error) {
	feedback := params.Feedback
	if feedback == nil {
		feedback = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO leads (name, company, industry, email, phone, match_score, status, company_size, location, feedback)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+selectLeadColumns,
		params.Name, params.Company, params.Industry, params.Email, params.Phone,
		params.MatchScore, string(params.Status), params.CompanySize, params.Location, feedback,
	)
	return scanLead(row)
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+selectLeadColumns+` FROM leads WHERE id = $1`, id)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

// List returns every lead matching q. There is no pagination.
func (r *Repository) List(ctx context.Context, q filter.Query) ([]domain.Lead, error) {
	compiled, err := compileQuery(q)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM leads WHERE %s ORDER BY %s`, selectLeadColumns, compiled.Where, compiled.OrderBy)
	rows, err := r.pool.Query(ctx, query, compiled.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return leads, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE leads SET status = $2, last_updated = now()
		WHERE id = $1
		RETURNING `+selectLeadColumns,
		id, string(status),
	)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

// ReplaceFeedback overwrites the whole feedback sequence.
func (r *Repository) ReplaceFeedback(ctx context.Context, id uuid.UUID, feedback []string) (domain.Lead, error) {
	if feedback == nil {
		feedback = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		UPDATE leads SET feedback = $2, last_updated = now()
		WHERE id = $1
		RETURNING `+selectLeadColumns,
		id, feedback,
	)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

// ListBatch pages through leads by id for maintenance jobs.
func (r *Repository) ListBatch(ctx context.Context, after uuid.UUID, limit int) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectLeadColumns+`
		FROM leads
		WHERE id > $1
		ORDER BY id
		LIMIT $2
	`, after, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0, limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// UpdateContact rewrites status and phone without touching last_updated.
func (r *Repository) UpdateContact(ctx context.Context, id uuid.UUID, status domain.Status, phone string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE leads SET status = $2, phone = $3 WHERE id = $1`, id, string(status), phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var (
		lead   domain.Lead
		status string
	)
	if err := row.Scan(
		&lead.ID, &lead.Name, &lead.Company, &lead.Industry, &lead.Email, &lead.Phone,
		&lead.MatchScore, &status, &lead.CompanySize, &lead.Location, &lead.Feedback,
		&lead.CreatedAt, &lead.LastUpdated,
	); err != nil {
		return domain.Lead{}, err
	}
	lead.Status = domain.Status(status)
	if lead.Feedback == nil {
		lead.Feedback = []string{}
	}
	return lead, nil
}
