package taxes

import (
	"strings"

	"github.com/odyssey-erp/salesorder/internal/shared"
)

func (s *Service) validate(t Tax) error {
	if strings.TrimSpace(t.TaxType) == "" {
		return shared.NewValidationError("taxType", "is required")
	}
	if t.Rate.IsNegative() {
		return shared.NewValidationError("rate", "must not be negative")
	}
	if t.VendorOrCustomer != PartyVendor && t.VendorOrCustomer != PartyCustomer {
		return shared.NewValidationError("vendorOrCustomer", "must be VENDOR or CUSTOMER")
	}
	return nil
}
