package items

import (
	"strings"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

func (s *Service) validate(item InventoryItem) error {
	if strings.TrimSpace(item.SKU) == "" {
		return shared.NewValidationError("sku", "is required")
	}
	if strings.TrimSpace(item.Name) == "" {
		return shared.NewValidationError("name", "is required")
	}
	if item.UnitPrice.IsNegative() {
		return shared.NewValidationError("unitPrice", "must not be negative")
	}
	if item.QuantityOnHand.Valid && item.QuantityOnHand.Decimal.IsNegative() {
		return shared.NewValidationError("quantityOnHand", "must not be negative")
	}
	return nil
}
