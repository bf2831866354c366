package accounts

import (
	"context"
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

type mockRepository struct {
	accounts map[uuid.UUID]Account
	listErr  error
}

func newMockRepository() *mockRepository {
	return &mockRepository{accounts: make(map[uuid.UUID]Account)}
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Account, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []Account{}
	for _, a := range m.accounts {
		if filter.OnlyAR && !a.IsAR {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return Account{}, fmt.Errorf("%w: account", shared.ErrNotFound)
	}
	return a, nil
}

func (m *mockRepository) GetByNumber(ctx context.Context, number string) (Account, error) {
	for _, a := range m.accounts {
		if a.AccountNumber == number {
			return a, nil
		}
	}
	return Account{}, fmt.Errorf("%w: account", shared.ErrNotFound)
}

func (m *mockRepository) Create(ctx context.Context, a Account) (Account, error) {
	a.ID = uuid.New()
	m.accounts[a.ID] = a
	return a, nil
}

func (m *mockRepository) Update(ctx context.Context, a Account) (Account, error) {
	if _, ok := m.accounts[a.ID]; !ok {
		return Account{}, fmt.Errorf("%w: account", shared.ErrNotFound)
	}
	m.accounts[a.ID] = a
	return a, nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.accounts[id]; !ok {
		return fmt.Errorf("%w: account", shared.ErrNotFound)
	}
	delete(m.accounts, id)
	return nil
}

func boolPtr(b bool) *bool { return &b }

func TestCreateDerivesFlags(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	ar, err := svc.Create(ctx, CreateAccountRequest{AccountNumber: "1100", Title: "Receivables", Type: AccountTypeReceivable})
	require.NoError(t, err)
	assert.True(t, ar.IsAR)
	assert.True(t, ar.IsGL)
	assert.False(t, ar.Inactive)

	other, err := svc.Create(ctx, CreateAccountRequest{AccountNumber: "4000", Title: "Sales", Type: AccountTypeOther, IsGL: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, other.IsAR)
	assert.False(t, other.IsGL)

	forced, err := svc.Create(ctx, CreateAccountRequest{AccountNumber: "1200", Title: "Misc", Type: AccountTypeOther, IsAR: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, forced.IsAR)
}

func TestCreateRejectsDuplicateNumber(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateAccountRequest{AccountNumber: "1100", Title: "A", Type: AccountTypeOther})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateAccountRequest{AccountNumber: " 1100 ", Title: "B", Type: AccountTypeOther})
	assert.ErrorIs(t, err, shared.ErrConflict)
}

func TestUpdate(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	a, err := svc.Create(ctx, CreateAccountRequest{AccountNumber: "1100", Title: "A", Type: AccountTypeOther})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateAccountRequest{AccountNumber: "1200", Title: "B", Type: AccountTypeOther})
	require.NoError(t, err)

	t.Run("keeps own number", func(t *testing.T) {
		number := "1100"
		updated, err := svc.Update(ctx, a.ID, UpdateAccountRequest{AccountNumber: &number})
		require.NoError(t, err)
		assert.Equal(t, "1100", updated.AccountNumber)
	})

	t.Run("number owned by another account", func(t *testing.T) {
		number := "1100"
		_, err := svc.Update(ctx, b.ID, UpdateAccountRequest{AccountNumber: &number})
		assert.ErrorIs(t, err, shared.ErrConflict)
	})

	t.Run("type change re-derives AR", func(t *testing.T) {
		typ := AccountTypeReceivable
		updated, err := svc.Update(ctx, b.ID, UpdateAccountRequest{Type: &typ})
		require.NoError(t, err)
		assert.True(t, updated.IsAR)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), UpdateAccountRequest{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestListARAndExists(t *testing.T) {
	svc := NewService(newMockRepository())
	ctx := context.Background()

	ar, err := svc.Create(ctx, CreateAccountRequest{AccountNumber: "1100", Title: "Receivables", Type: AccountTypeReceivable})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateAccountRequest{AccountNumber: "2100", Title: "Payables", Type: AccountTypePayable})
	require.NoError(t, err)

	list, err := svc.ListAR(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, ar.ID, list[0].ID)

	ok, err := svc.Exists(ctx, ar.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteMissing(t *testing.T) {
	svc := NewService(newMockRepository())
	assert.ErrorIs(t, svc.Delete(context.Background(), uuid.New()), shared.ErrNotFound)
}
