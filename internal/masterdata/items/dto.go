package items

import "github.com/shopspring/decimal"

type CreateItemRequest struct {
	SKU            string           `json:"sku" validate:"required,min=1,max=100"`
	Name           string           `json:"name" validate:"required,min=1,max=255"`
	Description    string           `json:"description"`
	UnitPrice      decimal.Decimal  `json:"unitPrice" validate:"gte=0"`
	QuantityOnHand *decimal.Decimal `json:"quantityOnHand,omitempty" validate:"omitempty,gte=0"`
}

type UpdateItemRequest struct {
	SKU            *string          `json:"sku,omitempty" validate:"omitempty,min=1,max=100"`
	Name           *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description    *string          `json:"description,omitempty"`
	UnitPrice      *decimal.Decimal `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
	QuantityOnHand *decimal.Decimal `json:"quantityOnHand,omitempty" validate:"omitempty,gte=0"`
}
