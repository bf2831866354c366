package orders

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

// listQuery is the SQL form of a ListFilter.
type listQuery struct {
	Where  string
	Args   []any
	Limit  int
	Offset int
}

// buildListQuery maps a ListFilter onto a WHERE clause over sales_orders (so)
// left-joined to customers (c). Dimensions are ANDed; the search text is ORed
// across customer PO, one-time customer name and customer name, plus an exact
// order-number match against the canonical form when it parses as a number
// ("42.0" and "4.2e1" both match "42").
func buildListQuery(f ListFilter) listQuery {
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != nil {
		conds = append(conds, "so.status = "+next(string(*f.Status)))
	}
	if f.DateFrom != nil {
		conds = append(conds, "so.order_date >= "+next(*f.DateFrom))
	}
	if f.DateTo != nil {
		conds = append(conds, "so.order_date <= "+next(*f.DateTo))
	}
	if f.TransactionType != nil {
		conds = append(conds, "so.transaction_type = "+next(string(*f.TransactionType)))
	}
	if f.ARAccountID != nil {
		conds = append(conds, "so.ar_account_id = "+next(*f.ARAccountID))
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		p := next("%" + escapeLike(search) + "%")
		clauses := []string{
			"so.customer_po ILIKE " + p,
			"so.one_time_customer_name ILIKE " + p,
			"c.name ILIKE " + p,
		}
		if n, err := decimal.NewFromString(search); err == nil {
			clauses = append(clauses, "so.so_number = "+next(n.String()))
		}
		conds = append(conds, "("+strings.Join(clauses, " OR ")+")")
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	take := f.Take
	if take <= 0 {
		take = shared.DefaultTake
	}
	if take > shared.MaxTake {
		take = shared.MaxTake
	}
	skip := f.Skip
	if skip < 0 {
		skip = 0
	}
	return listQuery{Where: where, Args: args, Limit: take, Offset: skip}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
