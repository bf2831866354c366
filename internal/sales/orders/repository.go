package orders

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/odyssey-erp/salesorder/internal/platform/db"
)

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id uuid.UUID) (SalesOrder, error)
	List(ctx context.Context, filter ListFilter) ([]SalesOrder, int, error)
	Create(ctx context.Context, order SalesOrder) (uuid.UUID, error)
	Update(ctx context.Context, order SalesOrder) error
	InsertLines(ctx context.Context, orderID uuid.UUID, lines []SalesOrderLineItem) error
	DeleteLines(ctx context.Context, orderID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// MarkSubmitted moves a DRAFT order to SUBMITTED and reports whether a row changed.
	MarkSubmitted(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db   db.DBTX
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const orderColumns = `so.id, so.so_number, so.customer_id, c.name, so.one_time_customer_name, so.order_date,
	so.customer_po, so.ar_account_id, so.ship_by, so.transaction_type, so.transaction_origin, so.ship_via,
	so.status, so.total_amount, so.created_at, so.updated_at`

const orderFrom = ` FROM sales_orders so LEFT JOIN customers c ON c.id = so.customer_id `

const lineColumns = `id, sales_order_id, line_no, quantity, shipped, inventory_item_id, gl_account_id, tax_id,
	description, unit_price, amount, project, phase`

func scanOrder(row pgx.Row) (SalesOrder, error) {
	var o SalesOrder
	err := row.Scan(&o.ID, &o.SONumber, &o.CustomerID, &o.CustomerName, &o.OneTimeCustomerName, &o.Date,
		&o.CustomerPO, &o.ARAccountID, &o.ShipBy, &o.TransactionType, &o.TransactionOrigin, &o.ShipVia,
		&o.Status, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

func scanLine(row pgx.Row) (SalesOrderLineItem, error) {
	var l SalesOrderLineItem
	err := row.Scan(&l.ID, &l.SalesOrderID, &l.LineNo, &l.Quantity, &l.Shipped, &l.InventoryItemID, &l.GLAccountID, &l.TaxID,
		&l.Description, &l.UnitPrice, &l.Amount, &l.Project, &l.Phase)
	return l, err
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (SalesOrder, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `SELECT `+orderColumns+orderFrom+`WHERE so.id = $1`, id))
	if err != nil {
		return SalesOrder{}, db.MapError(err, "sales order "+id.String())
	}
	lines, err := r.linesFor(ctx, []uuid.UUID{id})
	if err != nil {
		return SalesOrder{}, err
	}
	o.LineItems = lines[id]
	if o.LineItems == nil {
		o.LineItems = []SalesOrderLineItem{}
	}
	return o, nil
}

// List uses a dynamic query built from the closed ListFilter.
func (r *repository) List(ctx context.Context, filter ListFilter) ([]SalesOrder, int, error) {
	q := buildListQuery(filter)

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*)`+orderFrom+q.Where, q.Args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales orders: %w", err)
	}

	n := len(q.Args)
	query := fmt.Sprintf(`SELECT %s%s%s ORDER BY so.order_date DESC, so.id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, orderFrom, q.Where, n+1, n+2)
	args := append(append([]any{}, q.Args...), q.Limit, q.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales orders: %w", err)
	}
	defer rows.Close()

	orders := []SalesOrder{}
	ids := []uuid.UUID{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	lines, err := r.linesFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].LineItems = lines[orders[i].ID]
		if orders[i].LineItems == nil {
			orders[i].LineItems = []SalesOrderLineItem{}
		}
	}
	return orders, total, nil
}

func (r *repository) linesFor(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]SalesOrderLineItem, error) {
	out := make(map[uuid.UUID][]SalesOrderLineItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	ids := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		ids[i] = id.String()
	}
	rows, err := r.db.Query(ctx, `SELECT `+lineColumns+` FROM sales_order_line_items
		WHERE sales_order_id = ANY($1::uuid[]) ORDER BY sales_order_id, line_no`, ids)
	if err != nil {
		return nil, fmt.Errorf("load line items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		l, err := scanLine(rows)
		if err != nil {
			return nil, err
		}
		out[l.SalesOrderID] = append(out[l.SalesOrderID], l)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, o SalesOrder) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, `INSERT INTO sales_orders
		(so_number, customer_id, one_time_customer_name, order_date, customer_po, ar_account_id, ship_by,
		 transaction_type, transaction_origin, ship_via, status, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		o.SONumber, o.CustomerID, o.OneTimeCustomerName, o.Date, o.CustomerPO, o.ARAccountID, o.ShipBy,
		o.TransactionType, o.TransactionOrigin, o.ShipVia, o.Status, o.TotalAmount,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, db.MapError(err, "sales order "+o.SONumber)
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, o SalesOrder) error {
	tag, err := r.db.Exec(ctx, `UPDATE sales_orders SET
		customer_id = $2, one_time_customer_name = $3, order_date = $4, customer_po = $5, ar_account_id = $6,
		ship_by = $7, transaction_type = $8, transaction_origin = $9, ship_via = $10, total_amount = $11,
		updated_at = NOW()
		WHERE id = $1`,
		o.ID, o.CustomerID, o.OneTimeCustomerName, o.Date, o.CustomerPO, o.ARAccountID,
		o.ShipBy, o.TransactionType, o.TransactionOrigin, o.ShipVia, o.TotalAmount,
	)
	if err != nil {
		return db.MapError(err, "sales order "+o.ID.String())
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows, "sales order "+o.ID.String())
	}
	return nil
}

func (r *repository) InsertLines(ctx context.Context, orderID uuid.UUID, lines []SalesOrderLineItem) error {
	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(`INSERT INTO sales_order_line_items
			(sales_order_id, line_no, quantity, shipped, inventory_item_id, gl_account_id, tax_id,
			 description, unit_price, amount, project, phase)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			orderID, l.LineNo, l.Quantity, l.Shipped, l.InventoryItemID, l.GLAccountID, l.TaxID,
			l.Description, l.UnitPrice, l.Amount, l.Project, l.Phase)
	}
	results := r.db.SendBatch(ctx, batch)
	for i := range lines {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return db.MapError(err, fmt.Sprintf("line item %d", i+1))
		}
	}
	return results.Close()
}

func (r *repository) DeleteLines(ctx context.Context, orderID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sales_order_line_items WHERE sales_order_id = $1`, orderID)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM sales_orders WHERE id = $1`, id)
	if err != nil {
		return db.MapError(err, "sales order "+id.String())
	}
	if tag.RowsAffected() == 0 {
		return db.MapError(pgx.ErrNoRows, "sales order "+id.String())
	}
	return nil
}

func (r *repository) MarkSubmitted(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE sales_orders SET status = 'SUBMITTED', updated_at = NOW()
		WHERE id = $1 AND status <> 'SUBMITTED'`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
