package repository

import (
	"context"
	"errors"

	"sales_portal_backend/internal/leads/domain"

	accountsrepo "sales_portal_backend/internal/accounts/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// AccountDefaults are the account fields that do not come from the lead.
type AccountDefaults struct {
	Industry string
	Value    string
	Owner    string
	Status   string
}

// Convert marks the lead converted and creates its account in one
// transaction. The status write is a compare-and-set, so concurrent calls
// for the same lead produce at most one account.
func (r *Repository) Convert(ctx context.Context, id uuid.UUID, defaults AccountDefaults) (domain.Lead, accountsrepo.Account, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Lead{}, accountsrepo.Account{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	row := tx.QueryRow(ctx, `
		UPDATE leads SET status = 'converted', last_updated = now()
		WHERE id = $1 AND lower(status) <> 'converted'
		RETURNING `+selectLeadColumns,
		id,
	)
	lead, err := scanLead(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, accountsrepo.Account{}, classifyMissedConversion(ctx, tx, id)
	}
	if err != nil {
		return domain.Lead{}, accountsrepo.Account{}, err
	}

	leadID := lead.ID
	account, err := r.accounts.CreateTx(ctx, tx, accountsrepo.CreateParams{
		LeadID:   &leadID,
		Company:  lead.Company,
		Industry: defaults.Industry,
		Value:    defaults.Value,
		Owner:    defaults.Owner,
		Status:   defaults.Status,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return domain.Lead{}, accountsrepo.Account{}, ErrAlreadyConverted
		}
		return domain.Lead{}, accountsrepo.Account{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Lead{}, accountsrepo.Account{}, err
	}

	return lead, account, nil
}

// classifyMissedConversion tells a missing lead apart from one that is
// already converted after the compare-and-set matched nothing.
func classifyMissedConversion(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leads WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrAlreadyConverted
}
