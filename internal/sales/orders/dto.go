package orders

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Date accepts RFC3339 timestamps as well as plain YYYY-MM-DD dates.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	raw = strings.TrimSpace(raw)
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", raw)
}

func (d *Date) ptr() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}

type CreateSalesOrderLineItemRequest struct {
	InventoryItemID *uuid.UUID       `json:"inventoryItemId,omitempty"`
	GLAccountID     uuid.UUID        `json:"glAccountId" validate:"required"`
	TaxID           *uuid.UUID       `json:"taxId,omitempty"`
	Quantity        decimal.Decimal  `json:"quantity" validate:"gte=0"`
	Shipped         *decimal.Decimal `json:"shipped,omitempty" validate:"omitempty,gte=0"`
	Description     string           `json:"description"`
	UnitPrice       decimal.Decimal  `json:"unitPrice" validate:"gte=0"`
	Project         *string          `json:"project,omitempty"`
	Phase           *string          `json:"phase,omitempty"`
}

type CreateSalesOrderRequest struct {
	SONumber            string                            `json:"soNumber,omitempty"`
	CustomerID          *uuid.UUID                        `json:"customerId,omitempty"`
	OneTimeCustomerName *string                           `json:"oneTimeCustomerName,omitempty" validate:"omitempty,max=255"`
	Date                *Date                             `json:"date,omitempty"`
	CustomerPO          *string                           `json:"customerPO,omitempty"`
	ARAccountID         uuid.UUID                         `json:"arAccountId" validate:"required"`
	ShipBy              *Date                             `json:"shipBy,omitempty"`
	TransactionType     TransactionType                   `json:"transactionType" validate:"required,oneof=GOODS SERVICES"`
	TransactionOrigin   *TransactionOrigin                `json:"transactionOrigin,omitempty" validate:"omitempty,oneof=LOCAL IMPORTED"`
	ShipVia             *ShipVia                          `json:"shipVia,omitempty" validate:"omitempty,oneof=CUSTOMER_VEHICLE COMPANY_VEHICLE"`
	Status              *SalesOrderStatus                 `json:"status,omitempty" validate:"omitempty,oneof=DRAFT SUBMITTED"`
	LineItems           []CreateSalesOrderLineItemRequest `json:"lineItems" validate:"dive"`
}

// UpdateSalesOrderRequest patches an order. A nil LineItems leaves the existing lines
// and total untouched; a non-nil one replaces the whole set.
type UpdateSalesOrderRequest struct {
	CustomerID          *uuid.UUID                         `json:"customerId,omitempty"`
	OneTimeCustomerName *string                            `json:"oneTimeCustomerName,omitempty" validate:"omitempty,max=255"`
	Date                *Date                              `json:"date,omitempty"`
	CustomerPO          *string                            `json:"customerPO,omitempty"`
	ARAccountID         *uuid.UUID                         `json:"arAccountId,omitempty"`
	ShipBy              *Date                              `json:"shipBy,omitempty"`
	TransactionType     *TransactionType                   `json:"transactionType,omitempty" validate:"omitempty,oneof=GOODS SERVICES"`
	TransactionOrigin   *TransactionOrigin                 `json:"transactionOrigin,omitempty" validate:"omitempty,oneof=LOCAL IMPORTED"`
	ShipVia             *ShipVia                           `json:"shipVia,omitempty" validate:"omitempty,oneof=CUSTOMER_VEHICLE COMPANY_VEHICLE"`
	LineItems           *[]CreateSalesOrderLineItemRequest `json:"lineItems,omitempty" validate:"omitempty,dive"`
}
