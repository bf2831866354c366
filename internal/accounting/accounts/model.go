package accounts

import (
	"time"

	"github.com/google/uuid"
)

// AccountType enumerates ledger account categories.
type AccountType string

const (
	AccountTypePayable    AccountType = "AccountsPayable"
	AccountTypeReceivable AccountType = "AccountsReceivable"
	AccountTypeOther      AccountType = "Other"
)

// Account is a ledger account referenced by taxes, orders and order lines.
type Account struct {
	ID            uuid.UUID   `json:"id"`
	AccountNumber string      `json:"accountNumber"`
	Title         string      `json:"title"`
	Type          AccountType `json:"type"`
	IsAR          bool        `json:"isAR"`
	IsGL          bool        `json:"isGL"`
	Inactive      bool        `json:"inactive"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// ListFilter narrows account listings.
type ListFilter struct {
	OnlyAR bool
}
