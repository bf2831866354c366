package orders

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	salesshared "github.com/odyssey-erp/salesorder/internal/sales/shared"
	"github.com/odyssey-erp/salesorder/internal/shared"
)

const (
	soNumberPrefix    = "SO-"
	maxParallelLookup = 8
)

// TaxLookup resolves a tax id to its percentage rate.
type TaxLookup interface {
	Rate(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)
}

// NumberGenerator produces order numbers for orders created without one.
type NumberGenerator interface {
	Next() string
}

// SnowflakeNumbers issues "SO-<snowflake id>" numbers, monotonic per node.
type SnowflakeNumbers struct {
	node *snowflake.Node
}

func NewSnowflakeNumbers(nodeID int64) (*SnowflakeNumbers, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, fmt.Errorf("snowflake node %d: %w", nodeID, err)
	}
	return &SnowflakeNumbers{node: node}, nil
}

func (s *SnowflakeNumbers) Next() string {
	return soNumberPrefix + s.node.Generate().String()
}

// Assembler validates an order draft and prices its lines.
type Assembler struct {
	taxes   TaxLookup
	numbers NumberGenerator
	now     func() time.Time
}

func NewAssembler(taxes TaxLookup, numbers NumberGenerator) *Assembler {
	return &Assembler{taxes: taxes, numbers: numbers, now: time.Now}
}

// Assemble builds a persistable order from a create request. Apart from tax
// lookups it has no side effects.
func (a *Assembler) Assemble(ctx context.Context, req CreateSalesOrderRequest) (SalesOrder, error) {
	lines, total, err := a.PriceLines(ctx, req.TransactionType, req.LineItems)
	if err != nil {
		return SalesOrder{}, err
	}

	number := strings.TrimSpace(req.SONumber)
	if number == "" {
		number = a.numbers.Next()
	}

	status := StatusDraft
	if req.Status != nil && *req.Status != "" {
		status = *req.Status
	}

	date := a.now().UTC()
	if req.Date != nil {
		date = req.Date.Time
	}

	return SalesOrder{
		SONumber:            number,
		CustomerID:          req.CustomerID,
		OneTimeCustomerName: trimmed(req.OneTimeCustomerName),
		Date:                date,
		CustomerPO:          trimmed(req.CustomerPO),
		ARAccountID:         req.ARAccountID,
		ShipBy:              req.ShipBy.ptr(),
		TransactionType:     req.TransactionType,
		TransactionOrigin:   req.TransactionOrigin,
		ShipVia:             req.ShipVia,
		Status:              status,
		TotalAmount:         total,
		LineItems:           lines,
	}, nil
}

// PriceLines applies the transaction-type rules to every line, resolves tax
// rates and returns the priced lines with their total.
func (a *Assembler) PriceLines(ctx context.Context, txType TransactionType, reqs []CreateSalesOrderLineItemRequest) ([]SalesOrderLineItem, decimal.Decimal, error) {
	if len(reqs) == 0 {
		return nil, decimal.Zero, shared.NewValidationError("lineItems", "at least one line item is required")
	}

	lines := make([]SalesOrderLineItem, len(reqs))
	for i, req := range reqs {
		line := SalesOrderLineItem{
			LineNo:          i + 1,
			Quantity:        req.Quantity,
			Shipped:         decimal.Zero,
			InventoryItemID: req.InventoryItemID,
			GLAccountID:     req.GLAccountID,
			TaxID:           req.TaxID,
			Description:     req.Description,
			UnitPrice:       req.UnitPrice,
			Project:         req.Project,
			Phase:           req.Phase,
		}
		if req.Shipped != nil {
			line.Shipped = *req.Shipped
		}
		switch txType {
		case TransactionGoods:
			if line.InventoryItemID == nil || *line.InventoryItemID == uuid.Nil {
				return nil, decimal.Zero, shared.NewValidationError(
					fmt.Sprintf("lineItems[%d].inventoryItemId", i),
					"inventory item is required for GOODS transactions")
			}
		case TransactionServices:
			line.InventoryItemID = nil
		default:
			return nil, decimal.Zero, shared.NewValidationError("transactionType", "must be GOODS or SERVICES")
		}
		lines[i] = line
	}

	rates, err := a.resolveRates(ctx, lines)
	if err != nil {
		return nil, decimal.Zero, err
	}

	amounts := make([]decimal.Decimal, len(lines))
	for i := range lines {
		rate := decimal.Zero
		if lines[i].TaxID != nil {
			rate = rates[*lines[i].TaxID]
		}
		lines[i].Amount = salesshared.LineAmount(lines[i].Quantity, lines[i].UnitPrice, rate)
		amounts[i] = lines[i].Amount
	}
	return lines, salesshared.SumAmounts(amounts...), nil
}

// resolveRates looks up each distinct tax id once, concurrently. Lines without
// a tax are never looked up.
func (a *Assembler) resolveRates(ctx context.Context, lines []SalesOrderLineItem) (map[uuid.UUID]decimal.Decimal, error) {
	rates := make(map[uuid.UUID]decimal.Decimal)
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		if l.TaxID == nil {
			continue
		}
		if _, seen := rates[*l.TaxID]; !seen {
			rates[*l.TaxID] = decimal.Zero
			ids = append(ids, *l.TaxID)
		}
	}
	if len(ids) == 0 {
		return rates, nil
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLookup)
	for _, id := range ids {
		g.Go(func() error {
			rate, err := a.taxes.Rate(gctx, id)
			if err != nil {
				return fmt.Errorf("tax lookup: %w", err)
			}
			mu.Lock()
			rates[id] = rate
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rates, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
