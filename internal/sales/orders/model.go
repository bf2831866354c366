package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionGoods    TransactionType = "GOODS"
	TransactionServices TransactionType = "SERVICES"
)

type TransactionOrigin string

const (
	OriginLocal    TransactionOrigin = "LOCAL"
	OriginImported TransactionOrigin = "IMPORTED"
)

type ShipVia string

const (
	ShipViaCustomerVehicle ShipVia = "CUSTOMER_VEHICLE"
	ShipViaCompanyVehicle  ShipVia = "COMPANY_VEHICLE"
)

// SalesOrderStatus is a two-state machine: DRAFT -> SUBMITTED. SUBMITTED is terminal.
type SalesOrderStatus string

const (
	StatusDraft     SalesOrderStatus = "DRAFT"
	StatusSubmitted SalesOrderStatus = "SUBMITTED"
)

// SalesOrder is an order header with its priced line items.
type SalesOrder struct {
	ID                  uuid.UUID            `json:"id"`
	SONumber            string               `json:"soNumber"`
	CustomerID          *uuid.UUID           `json:"customerId,omitempty"`
	CustomerName        *string              `json:"customerName,omitempty"`
	OneTimeCustomerName *string              `json:"oneTimeCustomerName,omitempty"`
	Date                time.Time            `json:"date"`
	CustomerPO          *string              `json:"customerPO,omitempty"`
	ARAccountID         uuid.UUID            `json:"arAccountId"`
	ShipBy              *time.Time           `json:"shipBy,omitempty"`
	TransactionType     TransactionType      `json:"transactionType"`
	TransactionOrigin   *TransactionOrigin   `json:"transactionOrigin,omitempty"`
	ShipVia             *ShipVia             `json:"shipVia,omitempty"`
	Status              SalesOrderStatus     `json:"status"`
	TotalAmount         decimal.Decimal      `json:"totalAmount"`
	LineItems           []SalesOrderLineItem `json:"lineItems"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"updatedAt"`
}

// SalesOrderLineItem is owned by its order and never exists on its own.
type SalesOrderLineItem struct {
	ID              uuid.UUID       `json:"id"`
	SalesOrderID    uuid.UUID       `json:"salesOrderId"`
	LineNo          int             `json:"lineNo"`
	Quantity        decimal.Decimal `json:"quantity"`
	Shipped         decimal.Decimal `json:"shipped"`
	InventoryItemID *uuid.UUID      `json:"inventoryItemId,omitempty"`
	GLAccountID     uuid.UUID       `json:"glAccountId"`
	TaxID           *uuid.UUID      `json:"taxId,omitempty"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Amount          decimal.Decimal `json:"amount"`
	Project         *string         `json:"project,omitempty"`
	Phase           *string         `json:"phase,omitempty"`
}

// ListFilter is the closed set of listing criteria. Nil or zero fields are not applied.
type ListFilter struct {
	Search          string
	DateFrom        *time.Time
	DateTo          *time.Time
	Status          *SalesOrderStatus
	TransactionType *TransactionType
	ARAccountID     *uuid.UUID
	Skip            int
	Take            int
}

// SubmittedEvent is published after an order transitions to SUBMITTED.
type SubmittedEvent struct {
	OrderID     uuid.UUID       `json:"orderId"`
	SONumber    string          `json:"soNumber"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	SubmittedAt time.Time       `json:"submittedAt"`
}
