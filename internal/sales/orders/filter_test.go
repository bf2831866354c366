package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

func TestBuildListQueryEmpty(t *testing.T) {
	q := buildListQuery(ListFilter{})
	assert.Empty(t, q.Where)
	assert.Empty(t, q.Args)
	assert.Equal(t, shared.DefaultTake, q.Limit)
	assert.Equal(t, 0, q.Offset)
}

func TestBuildListQueryAllDimensions(t *testing.T) {
	status := StatusDraft
	tt := TransactionServices
	ar := uuid.New()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	q := buildListQuery(ListFilter{
		Status:          &status,
		DateFrom:        &from,
		DateTo:          &to,
		TransactionType: &tt,
		ARAccountID:     &ar,
		Search:          "acme",
		Skip:            20,
		Take:            10,
	})

	assert.Equal(t, "WHERE so.status = $1 AND so.order_date >= $2 AND so.order_date <= $3"+
		" AND so.transaction_type = $4 AND so.ar_account_id = $5"+
		" AND (so.customer_po ILIKE $6 OR so.one_time_customer_name ILIKE $6 OR c.name ILIKE $6)", q.Where)
	assert.Equal(t, []any{"DRAFT", from, to, "SERVICES", ar, "%acme%"}, q.Args)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 20, q.Offset)
}

func TestBuildListQueryNumericSearch(t *testing.T) {
	q := buildListQuery(ListFilter{Search: "42"})
	assert.Equal(t, "WHERE (so.customer_po ILIKE $1 OR so.one_time_customer_name ILIKE $1 OR c.name ILIKE $1 OR so.so_number = $2)", q.Where)
	assert.Equal(t, []any{"%42%", "42"}, q.Args)

	for search, want := range map[string]string{"42.0": "42", "1e3": "1000", "0042": "42", "1.50": "1.5"} {
		q = buildListQuery(ListFilter{Search: search})
		require.Len(t, q.Args, 2, search)
		assert.Equal(t, want, q.Args[1], search)
	}
}

func TestBuildListQueryEscapesWildcards(t *testing.T) {
	q := buildListQuery(ListFilter{Search: "50%_off"})
	assert.Equal(t, []any{`%50\%\_off%`}, q.Args)
}

func TestBuildListQueryClampsPaging(t *testing.T) {
	q := buildListQuery(ListFilter{Skip: -5, Take: shared.MaxTake + 1})
	assert.Equal(t, 0, q.Offset)
	assert.Equal(t, shared.MaxTake, q.Limit)
}
