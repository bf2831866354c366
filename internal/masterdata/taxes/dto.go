package taxes

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateTaxRequest struct {
	TaxType           string          `json:"taxType" validate:"required,min=1,max=100"`
	Rate              decimal.Decimal `json:"rate" validate:"gte=0"`
	TaxAuthorityName  *string         `json:"taxAuthorityName,omitempty"`
	BankAccountNumber *string         `json:"bankAccountNumber,omitempty"`
	VendorOrCustomer  Party           `json:"vendorOrCustomer" validate:"required,oneof=VENDOR CUSTOMER"`
	VendorTaxOffice   *string         `json:"vendorTaxOffice,omitempty"`
	GLAccountID       uuid.UUID       `json:"glAccountId" validate:"required"`
}

type UpdateTaxRequest struct {
	TaxType           *string          `json:"taxType,omitempty" validate:"omitempty,min=1,max=100"`
	Rate              *decimal.Decimal `json:"rate,omitempty" validate:"omitempty,gte=0"`
	TaxAuthorityName  *string          `json:"taxAuthorityName,omitempty"`
	BankAccountNumber *string          `json:"bankAccountNumber,omitempty"`
	VendorOrCustomer  *Party           `json:"vendorOrCustomer,omitempty" validate:"omitempty,oneof=VENDOR CUSTOMER"`
	VendorTaxOffice   *string          `json:"vendorTaxOffice,omitempty"`
	GLAccountID       *uuid.UUID       `json:"glAccountId,omitempty"`
}
