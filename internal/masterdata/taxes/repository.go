package taxes

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/salesorder/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context) ([]Tax, error)
	Get(ctx context.Context, id uuid.UUID) (Tax, error)
	Rate(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
	Create(ctx context.Context, tax Tax) (Tax, error)
	Update(ctx context.Context, tax Tax) (Tax, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const taxColumns = `id, tax_type, rate, tax_authority_name, bank_account_number, vendor_or_customer,
	vendor_tax_office, gl_account_id, created_at, updated_at`

func scanTax(row pgx.Row) (Tax, error) {
	var t Tax
	err := row.Scan(&t.ID, &t.TaxType, &t.Rate, &t.TaxAuthorityName, &t.BankAccountNumber, &t.VendorOrCustomer,
		&t.VendorTaxOffice, &t.GLAccountID, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *repository) List(ctx context.Context) ([]Tax, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+taxColumns+` FROM taxes ORDER BY tax_type, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	taxes := []Tax{}
	for rows.Next() {
		t, err := scanTax(rows)
		if err != nil {
			return nil, err
		}
		taxes = append(taxes, t)
	}
	return taxes, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (Tax, error) {
	t, err := scanTax(r.pool.QueryRow(ctx, `SELECT `+taxColumns+` FROM taxes WHERE id = $1`, id))
	if err != nil {
		return Tax{}, db.MapError(err, "tax "+id.String())
	}
	return t, nil
}

func (r *repository) Rate(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var rate decimal.Decimal
	if err := r.pool.QueryRow(ctx, `SELECT rate FROM taxes WHERE id = $1`, id).Scan(&rate); err != nil {
		return decimal.Zero, db.MapError(err, "tax "+id.String())
	}
	return rate, nil
}

func (r *repository) Create(ctx context.Context, tax Tax) (Tax, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO taxes
		(tax_type, rate, tax_authority_name, bank_account_number, vendor_or_customer, vendor_tax_office, gl_account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+taxColumns,
		tax.TaxType, tax.Rate, tax.TaxAuthorityName, tax.BankAccountNumber, tax.VendorOrCustomer, tax.VendorTaxOffice, tax.GLAccountID)
	created, err := scanTax(row)
	if err != nil {
		return Tax{}, db.MapError(err, "tax")
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, tax Tax) (Tax, error) {
	row := r.pool.QueryRow(ctx, `UPDATE taxes
		SET tax_type = $2, rate = $3, tax_authority_name = $4, bank_account_number = $5,
			vendor_or_customer = $6, vendor_tax_office = $7, gl_account_id = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING `+taxColumns,
		tax.ID, tax.TaxType, tax.Rate, tax.TaxAuthorityName, tax.BankAccountNumber, tax.VendorOrCustomer, tax.VendorTaxOffice, tax.GLAccountID)
	updated, err := scanTax(row)
	if err != nil {
		return Tax{}, db.MapError(err, "tax "+tax.ID.String())
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM taxes WHERE id = $1`, id)
	if err != nil {
		return db.MapError(err, "tax "+id.String())
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows, "tax "+id.String())
	}
	return nil
}
