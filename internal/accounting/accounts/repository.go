package accounts

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/salesorder/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Account, error)
	Get(ctx context.Context, id uuid.UUID) (Account, error)
	GetByNumber(ctx context.Context, number string) (Account, error)
	Create(ctx context.Context, a Account) (Account, error)
	Update(ctx context.Context, a Account) (Account, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const accountColumns = `id, account_number, title, type, is_ar, is_gl, inactive, created_at, updated_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.AccountNumber, &a.Title, &a.Type, &a.IsAR, &a.IsGL, &a.Inactive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if filter.OnlyAR {
		query += ` WHERE is_ar`
	}
	query += ` ORDER BY title, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	accounts := []Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
	if err != nil {
		return Account{}, db.MapError(err, "account "+id.String())
	}
	return a, nil
}

func (r *repository) GetByNumber(ctx context.Context, number string) (Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_number = $1`, number))
	if err != nil {
		return Account{}, db.MapError(err, "account number "+number)
	}
	return a, nil
}

func (r *repository) Create(ctx context.Context, a Account) (Account, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO accounts (account_number, title, type, is_ar, is_gl, inactive)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+accountColumns,
		a.AccountNumber, a.Title, a.Type, a.IsAR, a.IsGL, a.Inactive)
	created, err := scanAccount(row)
	if err != nil {
		return Account{}, db.MapError(err, "account number "+a.AccountNumber)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, a Account) (Account, error) {
	row := r.db.QueryRow(ctx, `UPDATE accounts
		SET account_number = $2, title = $3, type = $4, is_ar = $5, is_gl = $6, inactive = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING `+accountColumns,
		a.ID, a.AccountNumber, a.Title, a.Type, a.IsAR, a.IsGL, a.Inactive)
	updated, err := scanAccount(row)
	if err != nil {
		return Account{}, db.MapError(err, "account "+a.ID.String())
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return db.MapError(err, "account "+id.String())
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows, "account "+id.String())
	}
	return nil
}
