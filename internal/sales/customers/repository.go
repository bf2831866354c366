package customers

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/salesorder/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Customer, error)
	Get(ctx context.Context, id uuid.UUID) (Customer, error)
	Create(ctx context.Context, c Customer) (Customer, error)
	Update(ctx context.Context, c Customer) (Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = `id, name, email, created_at, updated_at`

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []any{}
	if filter.Search != "" {
		query += ` WHERE name ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+filter.Search+"%")
	}
	query += ` ORDER BY name, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := []Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Customer, error) {
	c, err := scanCustomer(r.pool.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		return Customer{}, db.MapError(err, "customer "+id.String())
	}
	return c, nil
}

func (r *repository) Create(ctx context.Context, c Customer) (Customer, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO customers (name, email) VALUES ($1, $2) RETURNING `+customerColumns, c.Name, c.Email)
	created, err := scanCustomer(row)
	if err != nil {
		return Customer{}, db.MapError(err, "customer")
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, c Customer) (Customer, error) {
	row := r.pool.QueryRow(ctx, `UPDATE customers SET name = $2, email = $3, updated_at = NOW()
		WHERE id = $1 RETURNING `+customerColumns, c.ID, c.Name, c.Email)
	updated, err := scanCustomer(row)
	if err != nil {
		return Customer{}, db.MapError(err, "customer "+c.ID.String())
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return db.MapError(err, "customer "+id.String())
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows, "customer "+id.String())
	}
	return nil
}
