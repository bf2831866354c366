package items

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InventoryItem is a stock-keeping unit that GOODS order lines reference.
type InventoryItem struct {
	ID             uuid.UUID           `json:"id"`
	SKU            string              `json:"sku"`
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	UnitPrice      decimal.Decimal     `json:"unitPrice"`
	QuantityOnHand decimal.NullDecimal `json:"quantityOnHand"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}
