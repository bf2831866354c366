package customers

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a named buyer that sales orders may reference.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListFilter narrows customer listings.
type ListFilter struct {
	Search string
}
