package accounts

// CreateAccountRequest is the payload for POST /accounts.
type CreateAccountRequest struct {
	AccountNumber string      `json:"accountNumber" validate:"required,max=50"`
	Title         string      `json:"title" validate:"required,max=255"`
	Type          AccountType `json:"type" validate:"required,oneof=AccountsPayable AccountsReceivable Other"`
	Inactive      *bool       `json:"inactive,omitempty"`
	IsAR          *bool       `json:"isAR,omitempty"`
	IsGL          *bool       `json:"isGL,omitempty"`
}

// UpdateAccountRequest is the payload for PATCH /accounts/{id}. Nil fields are left unchanged.
type UpdateAccountRequest struct {
	AccountNumber *string      `json:"accountNumber,omitempty" validate:"omitempty,min=1,max=50"`
	Title         *string      `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Type          *AccountType `json:"type,omitempty" validate:"omitempty,oneof=AccountsPayable AccountsReceivable Other"`
	Inactive      *bool        `json:"inactive,omitempty"`
	IsAR          *bool        `json:"isAR,omitempty"`
	IsGL          *bool        `json:"isGL,omitempty"`
}
