package items

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/salesorder/internal/platform/db"
)

type Repository interface {
	List(ctx context.Context) ([]InventoryItem, error)
	Get(ctx context.Context, id uuid.UUID) (InventoryItem, error)
	GetBySKU(ctx context.Context, sku string) (InventoryItem, error)
	Create(ctx context.Context, item InventoryItem) (InventoryItem, error)
	Update(ctx context.Context, item InventoryItem) (InventoryItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const itemColumns = `id, sku, name, COALESCE(description, ''), unit_price, quantity_on_hand, created_at, updated_at`

func scanItem(row pgx.Row) (InventoryItem, error) {
	var it InventoryItem
	err := row.Scan(&it.ID, &it.SKU, &it.Name, &it.Description, &it.UnitPrice, &it.QuantityOnHand, &it.CreatedAt, &it.UpdatedAt)
	return it, err
}

func (r *repository) List(ctx context.Context) ([]InventoryItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []InventoryItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (InventoryItem, error) {
	it, err := scanItem(r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id))
	if err != nil {
		return InventoryItem{}, db.MapError(err, "inventory item "+id.String())
	}
	return it, nil
}

func (r *repository) GetBySKU(ctx context.Context, sku string) (InventoryItem, error) {
	it, err := scanItem(r.pool.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE sku = $1`, sku))
	if err != nil {
		return InventoryItem{}, db.MapError(err, "sku "+sku)
	}
	return it, nil
}

func (r *repository) Create(ctx context.Context, item InventoryItem) (InventoryItem, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO inventory_items (sku, name, description, unit_price, quantity_on_hand)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+itemColumns,
		item.SKU, item.Name, item.Description, item.UnitPrice, item.QuantityOnHand)
	created, err := scanItem(row)
	if err != nil {
		return InventoryItem{}, db.MapError(err, "sku "+item.SKU)
	}
	return created, nil
}

func (r *repository) Update(ctx context.Context, item InventoryItem) (InventoryItem, error) {
	row := r.pool.QueryRow(ctx, `UPDATE inventory_items
		SET sku = $2, name = $3, description = $4, unit_price = $5, quantity_on_hand = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING `+itemColumns,
		item.ID, item.SKU, item.Name, item.Description, item.UnitPrice, item.QuantityOnHand)
	updated, err := scanItem(row)
	if err != nil {
		return InventoryItem{}, db.MapError(err, "inventory item "+item.ID.String())
	}
	return updated, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return db.MapError(err, "inventory item "+id.String())
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows, "inventory item "+id.String())
	}
	return nil
}
