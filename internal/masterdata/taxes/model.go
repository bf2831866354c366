package taxes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Party says whether a tax applies on the vendor or the customer side.
type Party string

const (
	PartyVendor   Party = "VENDOR"
	PartyCustomer Party = "CUSTOMER"
)

// Tax represents a tax configuration. Rate is a percentage.
type Tax struct {
	ID                uuid.UUID       `json:"id"`
	TaxType           string          `json:"taxType"`
	Rate              decimal.Decimal `json:"rate"`
	TaxAuthorityName  *string         `json:"taxAuthorityName,omitempty"`
	BankAccountNumber *string         `json:"bankAccountNumber,omitempty"`
	VendorOrCustomer  Party           `json:"vendorOrCustomer"`
	VendorTaxOffice   *string         `json:"vendorTaxOffice,omitempty"`
	GLAccountID       uuid.UUID       `json:"glAccountId"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
