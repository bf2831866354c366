package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

// ReferenceChecker confirms a referenced master-data record exists.
type ReferenceChecker interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// References groups the master-data lookups an order is checked against.
type References struct {
	Customers ReferenceChecker
	Accounts  ReferenceChecker
	Items     ReferenceChecker
}

// Notifier publishes order lifecycle events.
type Notifier interface {
	SalesOrderSubmitted(ctx context.Context, event SubmittedEvent) error
}

type Service struct {
	repo      Repository
	assembler *Assembler
	refs      References
	notifier  Notifier
	logger    *slog.Logger
}

func NewService(repo Repository, assembler *Assembler, refs References, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, assembler: assembler, refs: refs, notifier: notifier, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateSalesOrderRequest) (SalesOrder, error) {
	order, err := s.assembler.Assemble(ctx, req)
	if err != nil {
		return SalesOrder{}, err
	}
	if err := s.checkReferences(ctx, order); err != nil {
		return SalesOrder{}, err
	}

	var id uuid.UUID
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		var err error
		id, err = repo.Create(ctx, order)
		if err != nil {
			return err
		}
		return repo.InsertLines(ctx, id, order.LineItems)
	})
	if err != nil {
		return SalesOrder{}, fmt.Errorf("create sales order: %w", err)
	}

	created, err := s.repo.Get(ctx, id)
	if err != nil {
		return SalesOrder{}, err
	}
	if created.Status == StatusSubmitted {
		s.publishSubmitted(ctx, created)
	}
	return created, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]SalesOrder, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (SalesOrder, error) {
	return s.repo.Get(ctx, id)
}

// Update patches the order header. When a line set is supplied it is priced
// exactly like on create and replaces the previous set in the same transaction.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateSalesOrderRequest) (SalesOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return SalesOrder{}, err
	}

	typeChanged := req.TransactionType != nil && *req.TransactionType != order.TransactionType
	if typeChanged && req.LineItems == nil {
		return SalesOrder{}, shared.NewValidationError("lineItems", "must be supplied when changing transactionType")
	}

	applyUpdate(&order, req)

	if req.LineItems != nil {
		lines, total, err := s.assembler.PriceLines(ctx, order.TransactionType, *req.LineItems)
		if err != nil {
			return SalesOrder{}, err
		}
		order.LineItems = lines
		order.TotalAmount = total
	}
	if err := s.checkReferences(ctx, order); err != nil {
		return SalesOrder{}, err
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, order); err != nil {
			return err
		}
		if req.LineItems == nil {
			return nil
		}
		if err := repo.DeleteLines(ctx, id); err != nil {
			return err
		}
		return repo.InsertLines(ctx, id, order.LineItems)
	})
	if err != nil {
		return SalesOrder{}, fmt.Errorf("update sales order: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Submit transitions a DRAFT order to SUBMITTED.
func (s *Service) Submit(ctx context.Context, id uuid.UUID) (SalesOrder, error) {
	order, err := s.repo.Get(ctx, id)
	if err != nil {
		return SalesOrder{}, err
	}
	if order.Status == StatusSubmitted {
		return SalesOrder{}, fmt.Errorf("%w: sales order %s is already submitted", shared.ErrInvalidState, order.SONumber)
	}

	changed, err := s.repo.MarkSubmitted(ctx, id)
	if err != nil {
		return SalesOrder{}, fmt.Errorf("submit sales order: %w", err)
	}
	if !changed {
		// Lost a race with a concurrent submit or delete.
		if _, err := s.repo.Get(ctx, id); err != nil {
			return SalesOrder{}, err
		}
		return SalesOrder{}, fmt.Errorf("%w: sales order %s is already submitted", shared.ErrInvalidState, order.SONumber)
	}

	submitted, err := s.repo.Get(ctx, id)
	if err != nil {
		return SalesOrder{}, err
	}
	s.publishSubmitted(ctx, submitted)
	return submitted, nil
}

func (s *Service) publishSubmitted(ctx context.Context, o SalesOrder) {
	if s.notifier == nil {
		return
	}
	event := SubmittedEvent{
		OrderID:     o.ID,
		SONumber:    o.SONumber,
		TotalAmount: o.TotalAmount,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.notifier.SalesOrderSubmitted(ctx, event); err != nil {
		s.logger.Warn("publish sales order submitted", slog.Any("error", err), slog.String("so_number", o.SONumber))
	}
}

func (s *Service) checkReferences(ctx context.Context, o SalesOrder) error {
	if o.CustomerID != nil {
		if err := exists(ctx, s.refs.Customers, *o.CustomerID, "customer"); err != nil {
			return err
		}
	}
	if err := exists(ctx, s.refs.Accounts, o.ARAccountID, "ar account"); err != nil {
		return err
	}

	accounts := map[uuid.UUID]bool{o.ARAccountID: true}
	items := map[uuid.UUID]bool{}
	for _, l := range o.LineItems {
		if !accounts[l.GLAccountID] {
			accounts[l.GLAccountID] = true
			if err := exists(ctx, s.refs.Accounts, l.GLAccountID, "gl account"); err != nil {
				return err
			}
		}
		if l.InventoryItemID != nil && !items[*l.InventoryItemID] {
			items[*l.InventoryItemID] = true
			if err := exists(ctx, s.refs.Items, *l.InventoryItemID, "inventory item"); err != nil {
				return err
			}
		}
	}
	return nil
}

func exists(ctx context.Context, checker ReferenceChecker, id uuid.UUID, what string) error {
	if checker == nil {
		return nil
	}
	ok, err := checker.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check %s: %w", what, err)
	}
	if !ok {
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, what, id)
	}
	return nil
}

func applyUpdate(o *SalesOrder, req UpdateSalesOrderRequest) {
	if req.CustomerID != nil {
		o.CustomerID = req.CustomerID
		o.CustomerName = nil
	}
	if req.OneTimeCustomerName != nil {
		o.OneTimeCustomerName = trimmed(req.OneTimeCustomerName)
	}
	if req.Date != nil {
		o.Date = req.Date.Time
	}
	if req.CustomerPO != nil {
		o.CustomerPO = trimmed(req.CustomerPO)
	}
	if req.ARAccountID != nil {
		o.ARAccountID = *req.ARAccountID
	}
	if req.ShipBy != nil {
		o.ShipBy = req.ShipBy.ptr()
	}
	if req.TransactionType != nil {
		o.TransactionType = *req.TransactionType
	}
	if req.TransactionOrigin != nil {
		o.TransactionOrigin = req.TransactionOrigin
	}
	if req.ShipVia != nil {
		o.ShipVia = req.ShipVia
	}
}
