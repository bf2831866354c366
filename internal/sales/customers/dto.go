package customers

type CreateCustomerRequest struct {
	Name  string  `json:"name" validate:"required,min=1,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateCustomerRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}
