package orders

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	orders map[uuid.UUID]SalesOrder
	lines  map[uuid.UUID][]SalesOrderLineItem

	// Error injection
	txError         error
	insertLineError error
	// Simulates a concurrent submit landing between Get and MarkSubmitted.
	submitRace bool
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		orders: make(map[uuid.UUID]SalesOrder),
		lines:  make(map[uuid.UUID][]SalesOrderLineItem),
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	if m.txError != nil {
		return m.txError
	}
	orders := make(map[uuid.UUID]SalesOrder, len(m.orders))
	for k, v := range m.orders {
		orders[k] = v
	}
	lines := make(map[uuid.UUID][]SalesOrderLineItem, len(m.lines))
	for k, v := range m.lines {
		lines[k] = v
	}
	if err := fn(ctx, m); err != nil {
		m.orders, m.lines = orders, lines
		return err
	}
	return nil
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (SalesOrder, error) {
	o, ok := m.orders[id]
	if !ok {
		return SalesOrder{}, fmt.Errorf("%w: sales order %s", shared.ErrNotFound, id)
	}
	o.LineItems = append([]SalesOrderLineItem{}, m.lines[id]...)
	return o, nil
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]SalesOrder, int, error) {
	out := []SalesOrder{}
	for id := range m.orders {
		o, _ := m.Get(ctx, id)
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, len(out), nil
}

func (m *mockRepository) Create(ctx context.Context, o SalesOrder) (uuid.UUID, error) {
	for _, existing := range m.orders {
		if existing.SONumber == o.SONumber {
			return uuid.Nil, fmt.Errorf("%w: sales order %s already exists", shared.ErrConflict, o.SONumber)
		}
	}
	o.ID = uuid.New()
	o.LineItems = nil
	m.orders[o.ID] = o
	return o.ID, nil
}

func (m *mockRepository) Update(ctx context.Context, o SalesOrder) error {
	if _, ok := m.orders[o.ID]; !ok {
		return fmt.Errorf("%w: sales order", shared.ErrNotFound)
	}
	prev := m.orders[o.ID]
	o.Status = prev.Status
	o.SONumber = prev.SONumber
	o.LineItems = nil
	m.orders[o.ID] = o
	return nil
}

func (m *mockRepository) InsertLines(ctx context.Context, orderID uuid.UUID, lines []SalesOrderLineItem) error {
	if m.insertLineError != nil {
		return m.insertLineError
	}
	for _, l := range lines {
		l.ID = uuid.New()
		l.SalesOrderID = orderID
		m.lines[orderID] = append(m.lines[orderID], l)
	}
	return nil
}

func (m *mockRepository) DeleteLines(ctx context.Context, orderID uuid.UUID) error {
	delete(m.lines, orderID)
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.orders[id]; !ok {
		return fmt.Errorf("%w: sales order %s", shared.ErrNotFound, id)
	}
	delete(m.orders, id)
	delete(m.lines, id)
	return nil
}

func (m *mockRepository) MarkSubmitted(ctx context.Context, id uuid.UUID) (bool, error) {
	o, ok := m.orders[id]
	if m.submitRace && ok {
		o.Status = StatusSubmitted
		m.orders[id] = o
	}
	if !ok || o.Status == StatusSubmitted {
		return false, nil
	}
	o.Status = StatusSubmitted
	m.orders[id] = o
	return true, nil
}

// ============================================================================
// HELPERS
// ============================================================================

type stubRefs map[uuid.UUID]bool

func (s stubRefs) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s[id], nil
}

type recordingNotifier struct {
	events []SubmittedEvent
	err    error
}

func (n *recordingNotifier) SalesOrderSubmitted(ctx context.Context, event SubmittedEvent) error {
	n.events = append(n.events, event)
	return n.err
}

type fixture struct {
	svc      *Service
	repo     *mockRepository
	taxes    *stubTaxes
	notifier *recordingNotifier
	refs     stubRefs
	arID     uuid.UUID
	glID     uuid.UUID
	itemID   uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		repo:     newMockRepository(),
		taxes:    newStubTaxes(),
		notifier: &recordingNotifier{},
		refs:     stubRefs{},
		arID:     uuid.New(),
		glID:     uuid.New(),
		itemID:   uuid.New(),
	}
	f.refs[f.arID] = true
	f.refs[f.glID] = true
	f.refs[f.itemID] = true

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	refs := References{Customers: f.refs, Accounts: f.refs, Items: f.refs}
	f.svc = NewService(f.repo, newTestAssembler(f.taxes), refs, f.notifier, logger)
	return f
}

func (f *fixture) line(qty, price string, tax *uuid.UUID) CreateSalesOrderLineItemRequest {
	return CreateSalesOrderLineItemRequest{
		InventoryItemID: idPtr(f.itemID),
		GLAccountID:     f.glID,
		TaxID:           tax,
		Quantity:        dec(qty),
		UnitPrice:       dec(price),
	}
}

func (f *fixture) create(t *testing.T, lines ...CreateSalesOrderLineItemRequest) SalesOrder {
	t.Helper()
	order, err := f.svc.Create(context.Background(), CreateSalesOrderRequest{
		ARAccountID:     f.arID,
		TransactionType: TransactionGoods,
		LineItems:       lines,
	})
	require.NoError(t, err)
	return order
}

func sumLines(lines []SalesOrderLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// ============================================================================
// TESTS
// ============================================================================

func TestServiceCreate(t *testing.T) {
	f := newFixture()
	vat := f.taxes.add("10")

	order := f.create(t, f.line("2", "100", &vat), f.line("1", "5", nil))

	assert.NotEqual(t, uuid.Nil, order.ID)
	assert.Equal(t, StatusDraft, order.Status)
	require.Len(t, order.LineItems, 2)
	assert.True(t, order.TotalAmount.Equal(dec("225")))
	assert.True(t, order.TotalAmount.Equal(sumLines(order.LineItems)))
	assert.Empty(t, f.notifier.events)
}

func TestServiceCreateChecksReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	t.Run("unknown customer", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateSalesOrderRequest{
			CustomerID:      idPtr(uuid.New()),
			ARAccountID:     f.arID,
			TransactionType: TransactionGoods,
			LineItems:       []CreateSalesOrderLineItemRequest{f.line("1", "1", nil)},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown ar account", func(t *testing.T) {
		_, err := f.svc.Create(ctx, CreateSalesOrderRequest{
			ARAccountID:     uuid.New(),
			TransactionType: TransactionGoods,
			LineItems:       []CreateSalesOrderLineItemRequest{f.line("1", "1", nil)},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("unknown inventory item", func(t *testing.T) {
		line := f.line("1", "1", nil)
		line.InventoryItemID = idPtr(uuid.New())
		_, err := f.svc.Create(ctx, CreateSalesOrderRequest{
			ARAccountID:     f.arID,
			TransactionType: TransactionGoods,
			LineItems:       []CreateSalesOrderLineItemRequest{line},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	assert.Empty(t, f.repo.orders)
}

func TestServiceCreateIsAtomic(t *testing.T) {
	f := newFixture()
	f.repo.insertLineError = errors.New("disk full")

	_, err := f.svc.Create(context.Background(), CreateSalesOrderRequest{
		ARAccountID:     f.arID,
		TransactionType: TransactionGoods,
		LineItems:       []CreateSalesOrderLineItemRequest{f.line("1", "1", nil)},
	})
	require.Error(t, err)
	assert.Empty(t, f.repo.orders, "order row must not survive a failed line insert")
}

func TestServiceCreateDuplicateNumber(t *testing.T) {
	f := newFixture()
	req := CreateSalesOrderRequest{
		SONumber:        "SO-1",
		ARAccountID:     f.arID,
		TransactionType: TransactionGoods,
		LineItems:       []CreateSalesOrderLineItemRequest{f.line("1", "1", nil)},
	}
	_, err := f.svc.Create(context.Background(), req)
	require.NoError(t, err)
	_, err = f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestServiceUpdateReplacesLines(t *testing.T) {
	f := newFixture()
	vat := f.taxes.add("20")
	order := f.create(t, f.line("1", "10", nil), f.line("2", "10", nil))

	lines := []CreateSalesOrderLineItemRequest{f.line("3", "10", &vat)}
	updated, err := f.svc.Update(context.Background(), order.ID, UpdateSalesOrderRequest{LineItems: &lines})
	require.NoError(t, err)

	require.Len(t, updated.LineItems, 1)
	assert.True(t, updated.LineItems[0].Amount.Equal(dec("36")), "update applies tax like create")
	assert.True(t, updated.TotalAmount.Equal(dec("36")))
	assert.True(t, updated.TotalAmount.Equal(sumLines(updated.LineItems)))
}

func TestServiceUpdateWithoutLinesKeepsTotal(t *testing.T) {
	f := newFixture()
	order := f.create(t, f.line("2", "10", nil))
	po := "PO-77"

	updated, err := f.svc.Update(context.Background(), order.ID, UpdateSalesOrderRequest{CustomerPO: &po})
	require.NoError(t, err)
	require.NotNil(t, updated.CustomerPO)
	assert.Equal(t, "PO-77", *updated.CustomerPO)
	assert.Len(t, updated.LineItems, 1)
	assert.True(t, updated.TotalAmount.Equal(dec("20")))
}

func TestServiceUpdateEnforcesLineRules(t *testing.T) {
	f := newFixture()
	order := f.create(t, f.line("1", "10", nil))
	ctx := context.Background()

	t.Run("empty set", func(t *testing.T) {
		empty := []CreateSalesOrderLineItemRequest{}
		_, err := f.svc.Update(ctx, order.ID, UpdateSalesOrderRequest{LineItems: &empty})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("goods without inventory", func(t *testing.T) {
		line := f.line("1", "10", nil)
		line.InventoryItemID = nil
		lines := []CreateSalesOrderLineItemRequest{line}
		_, err := f.svc.Update(ctx, order.ID, UpdateSalesOrderRequest{LineItems: &lines})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("type change needs lines", func(t *testing.T) {
		services := TransactionServices
		_, err := f.svc.Update(ctx, order.ID, UpdateSalesOrderRequest{TransactionType: &services})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("switch to services clears inventory", func(t *testing.T) {
		services := TransactionServices
		lines := []CreateSalesOrderLineItemRequest{f.line("1", "10", nil)}
		updated, err := f.svc.Update(ctx, order.ID, UpdateSalesOrderRequest{TransactionType: &services, LineItems: &lines})
		require.NoError(t, err)
		assert.Nil(t, updated.LineItems[0].InventoryItemID)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := f.svc.Update(ctx, uuid.New(), UpdateSalesOrderRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	// The failed updates left the stored lines alone.
	stored, err := f.svc.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, stored.LineItems, 1)
}

func TestServiceSubmit(t *testing.T) {
	f := newFixture()
	order := f.create(t, f.line("1", "10", nil))
	ctx := context.Background()

	submitted, err := f.svc.Submit(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)
	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, order.ID, f.notifier.events[0].OrderID)
	assert.Equal(t, order.SONumber, f.notifier.events[0].SONumber)

	_, err = f.svc.Submit(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Len(t, f.notifier.events, 1)

	_, err = f.svc.Submit(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServiceSubmitLosesRace(t *testing.T) {
	f := newFixture()
	order := f.create(t, f.line("1", "10", nil))
	f.repo.submitRace = true

	_, err := f.svc.Submit(context.Background(), order.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Empty(t, f.notifier.events)
}

func TestServiceSubmitIgnoresNotifierFailure(t *testing.T) {
	f := newFixture()
	f.notifier.err = errors.New("queue down")
	order := f.create(t, f.line("1", "10", nil))

	submitted, err := f.svc.Submit(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)
}

func TestServiceDelete(t *testing.T) {
	f := newFixture()
	order := f.create(t, f.line("1", "10", nil))
	ctx := context.Background()

	require.NoError(t, f.svc.Delete(ctx, order.ID))
	assert.Empty(t, f.repo.lines)
	_, err := f.svc.Get(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, f.svc.Delete(ctx, uuid.New()), shared.ErrNotFound)
}
