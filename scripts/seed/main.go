package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/salesorder/internal/accounting/accounts"
	"github.com/odyssey-erp/salesorder/internal/app"
	"github.com/odyssey-erp/salesorder/internal/masterdata/items"
	"github.com/odyssey-erp/salesorder/internal/masterdata/taxes"
	"github.com/odyssey-erp/salesorder/internal/platform/db"
	"github.com/odyssey-erp/salesorder/internal/sales/customers"
	"github.com/odyssey-erp/salesorder/internal/sales/orders"
	"github.com/odyssey-erp/salesorder/internal/shared"
)

const demoOrderNumber = "SO-DEMO-0001"

func main() {
	_ = godotenv.Load()
	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(pool); err != nil {
		logger.Error("migrate", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("seeding accounts")
	acct, err := seedAccounts(ctx, pool)
	if err != nil {
		logger.Error("seed accounts", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("seeding master data")
	ref, err := seedMasterData(ctx, pool, acct)
	if err != nil {
		logger.Error("seed master data", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("seeding demo sales order")
	if err := seedDemoOrder(ctx, pool, logger, acct, ref); err != nil {
		logger.Error("seed demo order", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seed complete")
}

// =============================================================================
// ACCOUNTS
// =============================================================================

type seededAccounts struct {
	receivable uuid.UUID
	revenue    uuid.UUID
	taxPayable uuid.UUID
}

func seedAccounts(ctx context.Context, pool *pgxpool.Pool) (seededAccounts, error) {
	rows := []struct {
		number string
		title  string
		typ    accounts.AccountType
		isAR   bool
		target *uuid.UUID
	}{
		{"1100", "Trade Receivables", accounts.AccountTypeReceivable, true, nil},
		{"4000", "Sales Revenue", accounts.AccountTypeOther, false, nil},
		{"2200", "VAT Payable", accounts.AccountTypePayable, false, nil},
	}
	var out seededAccounts
	rows[0].target = &out.receivable
	rows[1].target = &out.revenue
	rows[2].target = &out.taxPayable

	for _, a := range rows {
		err := pool.QueryRow(ctx, `
			INSERT INTO accounts (account_number, title, type, is_ar, is_gl)
			VALUES ($1, $2, $3, $4, TRUE)
			ON CONFLICT (account_number) DO UPDATE SET title = EXCLUDED.title, updated_at = NOW()
			RETURNING id`, a.number, a.title, string(a.typ), a.isAR).Scan(a.target)
		if err != nil {
			return seededAccounts{}, err
		}
	}
	return out, nil
}

// =============================================================================
// MASTER DATA
// =============================================================================

type seededMasterData struct {
	customer uuid.UUID
	item     uuid.UUID
	vat      uuid.UUID
}

func seedMasterData(ctx context.Context, pool *pgxpool.Pool, acct seededAccounts) (seededMasterData, error) {
	var out seededMasterData

	err := pool.QueryRow(ctx, `
		INSERT INTO inventory_items (sku, name, description, unit_price, quantity_on_hand)
		VALUES ('WID-001', 'Widget', 'Standard widget', $1, $2)
		ON CONFLICT (sku) DO UPDATE SET name = EXCLUDED.name, updated_at = NOW()
		RETURNING id`, decimal.RequireFromString("12.50"), decimal.NewFromInt(100)).Scan(&out.item)
	if err != nil {
		return out, err
	}

	// customers and taxes carry no natural key, so look them up before inserting.
	if out.customer, err = firstOrInsert(ctx, pool,
		`SELECT id FROM customers WHERE name = $1 LIMIT 1`,
		`INSERT INTO customers (name, email) VALUES ($1, 'orders@acme.example') RETURNING id`,
		"Acme Trading"); err != nil {
		return out, err
	}
	if out.vat, err = firstOrInsert(ctx, pool,
		`SELECT id FROM taxes WHERE tax_type = $1 LIMIT 1`,
		`INSERT INTO taxes (tax_type, rate, vendor_or_customer, gl_account_id) VALUES ($1, 10, '`+string(taxes.PartyCustomer)+`', $2) RETURNING id`,
		"VAT 10%", acct.taxPayable); err != nil {
		return out, err
	}
	return out, nil
}

func firstOrInsert(ctx context.Context, pool *pgxpool.Pool, lookup, insert string, args ...any) (uuid.UUID, error) {
	var id uuid.UUID
	err := pool.QueryRow(ctx, lookup, args[0]).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(db.MapError(err, "seed row"), shared.ErrNotFound) {
		return uuid.Nil, err
	}
	err = pool.QueryRow(ctx, insert, args...).Scan(&id)
	return id, err
}

// =============================================================================
// SALES
// =============================================================================

func seedDemoOrder(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, acct seededAccounts, ref seededMasterData) error {
	accountsService := accounts.NewService(accounts.NewRepository(pool))
	numbers, err := orders.NewSnowflakeNumbers(1023)
	if err != nil {
		return err
	}
	service := orders.NewService(
		orders.NewRepository(pool),
		orders.NewAssembler(taxes.NewService(taxes.NewRepository(pool), accountsService), numbers),
		orders.References{
			Customers: customers.NewService(customers.NewRepository(pool)),
			Accounts:  accountsService,
			Items:     items.NewService(items.NewRepository(pool)),
		},
		nil,
		logger,
	)

	order, err := service.Create(ctx, orders.CreateSalesOrderRequest{
		SONumber:        demoOrderNumber,
		CustomerID:      &ref.customer,
		ARAccountID:     acct.receivable,
		TransactionType: orders.TransactionGoods,
		LineItems: []orders.CreateSalesOrderLineItemRequest{{
			InventoryItemID: &ref.item,
			GLAccountID:     acct.revenue,
			TaxID:           &ref.vat,
			Quantity:        decimal.NewFromInt(4),
			UnitPrice:       decimal.RequireFromString("12.50"),
			Description:     "Widget",
		}},
	})
	if errors.Is(err, shared.ErrConflict) {
		logger.Info("demo order already present", slog.String("so_number", demoOrderNumber))
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("demo order created", slog.String("so_number", order.SONumber), slog.String("total", order.TotalAmount.String()))
	return nil
}
