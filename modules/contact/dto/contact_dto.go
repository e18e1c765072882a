package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=255"`
}

// UpdateContactRequest is a partial patch; nil fields are left untouched.
type UpdateContactRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Company *string `json:"company,omitempty" validate:"omitempty,max=255"`
}

type ContactResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Company   *string   `json:"company,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ContactStats struct {
	Total           int `json:"total"`
	WithCompany     int `json:"with_company"`
	WithEmail       int `json:"with_email"`
	WithPhone       int `json:"with_phone"`
	UniqueCompanies int `json:"unique_companies"`
}

type Suggestion struct {
	ID    uuid.UUID `json:"id"`
	Label string    `json:"label"`
	Email string    `json:"email,omitempty"`
}

type DeleteContactResponse struct {
	ID uuid.UUID `json:"id"`
}
