package customers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

type mockRepository struct {
	customers map[uuid.UUID]Customer
	lastList  ListFilter
	getErr    error
}

func newMockRepository() *mockRepository {
	return &mockRepository{customers: make(map[uuid.UUID]Customer)}
}

func (m *mockRepository) List(ctx context.Context, filter ListFilter) ([]Customer, error) {
	m.lastList = filter
	out := []Customer{}
	for _, c := range m.customers {
		if filter.Search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(ctx context.Context, id uuid.UUID) (Customer, error) {
	if m.getErr != nil {
		return Customer{}, m.getErr
	}
	c, ok := m.customers[id]
	if !ok {
		return Customer{}, fmt.Errorf("%w: customer", shared.ErrNotFound)
	}
	return c, nil
}

func (m *mockRepository) Create(ctx context.Context, c Customer) (Customer, error) {
	c.ID = uuid.New()
	m.customers[c.ID] = c
	return c, nil
}

func (m *mockRepository) Update(ctx context.Context, c Customer) (Customer, error) {
	m.customers[c.ID] = c
	return c, nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.customers[id]; !ok {
		return fmt.Errorf("%w: customer", shared.ErrNotFound)
	}
	delete(m.customers, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestServiceCreateNormalizes(t *testing.T) {
	svc := NewService(newMockRepository())

	c, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "  Acme Corp ", Email: strPtr(" Sales@Acme.COM ")})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", c.Name)
	require.NotNil(t, c.Email)
	assert.Equal(t, "sales@acme.com", *c.Email)

	noMail, err := svc.Create(context.Background(), CreateCustomerRequest{Name: "Walk-in", Email: strPtr("  ")})
	require.NoError(t, err)
	assert.Nil(t, noMail.Email)
}

func TestServiceUpdatePartial(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateCustomerRequest{Name: "Acme", Email: strPtr("a@acme.com")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, UpdateCustomerRequest{Name: strPtr("Acme Ltd")})
	require.NoError(t, err)
	assert.Equal(t, "Acme Ltd", updated.Name)
	assert.Equal(t, "a@acme.com", *updated.Email)

	_, err = svc.Update(ctx, uuid.New(), UpdateCustomerRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestServiceExists(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateCustomerRequest{Name: "Acme"})
	require.NoError(t, err)

	ok, err := svc.Exists(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Exists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	repo.getErr = errors.New("db down")
	_, err = svc.Exists(ctx, c.ID)
	assert.Error(t, err)
}

func TestServiceListTrimsSearch(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo)
	_, err := svc.List(context.Background(), ListFilter{Search: "  acme "})
	require.NoError(t, err)
	assert.Equal(t, "acme", repo.lastList.Search)
}

func TestHandlerCreateRejectsBadEmail(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(newMockRepository()))
	r := chi.NewRouter()
	r.Route("/customers", h.MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"name":"Acme","email":"nope"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader(`{"name":"Acme"}`)))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/customers/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
