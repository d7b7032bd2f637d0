package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgForeignKeyViolation = "23503"

var ErrAccountNotFound = errors.New("account not found")

const selectActivityColumns = `id, account_id, type, subject, date, payload, created_at`

type Activity struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	Type      string
	Subject   string
	Date      time.Time
	Payload   map[string]any
	CreatedAt time.Time
}

type CreateParams struct {
	AccountID uuid.UUID
	Type      string
	Subject   string
	Date      time.Time
	Payload   map[string]any
}

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, params CreateParams) (Activity, error) {
	payload := params.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return Activity{}, err
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO activities (account_id, type, subject, date, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+selectActivityColumns,
		params.AccountID, params.Type, params.Subject, params.Date, payloadJSON,
	)
	activity, err := scanActivity(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return Activity{}, ErrAccountNotFound
		}
		return Activity{}, err
	}
	return activity, nil
}

// ListByAccount returns the account's activities, newest first.
func (r *Repository) ListByAccount(ctx context.Context, accountID uuid.UUID) ([]Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+selectActivityColumns+`
		FROM activities
		WHERE account_id = $1
		ORDER BY date DESC
	`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}

	if rows.Err() != nil {
		return nil, rows.Err()
	}

	return activities, nil
}

func scanActivity(row pgx.Row) (Activity, error) {
	var (
		activity    Activity
		payloadJSON []byte
	)
	if err := row.Scan(
		&activity.ID, &activity.AccountID, &activity.Type, &activity.Subject,
		&activity.Date, &payloadJSON, &activity.CreatedAt,
	); err != nil {
		return Activity{}, err
	}
	activity.Payload = map[string]any{}
	if len(payloadJSON) > 0 {
		if err := json.Unmarshal(payloadJSON, &activity.Payload); err != nil {
			return Activity{}, err
		}
	}
	return activity, nil
}
