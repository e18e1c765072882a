package entity

import (
	"agenda-api/core/entity"

	"github.com/google/uuid"
)

type Contact struct {
	UserID  uuid.UUID `db:"user_id" json:"user_id"`
	Name    string    `db:"name" json:"name"`
	Email   *string   `db:"email" json:"email,omitempty"`
	Phone   *string   `db:"phone" json:"phone,omitempty"`
	Company *string   `db:"company" json:"company,omitempty"`
	entity.BaseEntity
}
