package repository

import (
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/contact/entity"
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type ContactRepositoryInterface interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Contact, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Contact, error)
	Create(ctx context.Context, contact *entity.Contact) (*entity.Contact, error)
	Update(ctx context.Context, contact *entity.Contact) (*entity.Contact, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type ContactRepository struct {
	db database.Database
}

func NewContactRepository(db database.Database) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, user_id, name, email, phone, company, created_at, updated_at`

func (r *ContactRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE user_id = $1 ORDER BY name ASC`

	contacts := []entity.Contact{}
	if err := r.db.SelectContext(ctx, &contacts, query, userID); err != nil {
		logger.Error("ContactRepository:ListByUser", "error", err)
		return nil, err
	}
	return contacts, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1 AND user_id = $2`

	var contact entity.Contact
	if err := r.db.GetContext(ctx, &contact, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("ContactRepository:GetByID", "error", err)
		return nil, err
	}
	return &contact, nil
}

func (r *ContactRepository) Create(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	query := `
		INSERT INTO contacts (user_id, name, email, phone, company)
		VALUES (:user_id, :name, :email, :phone, :company)
		RETURNING ` + contactColumns

	rows, err := r.db.NamedQueryContext(ctx, query, contact)
	if err != nil {
		logger.Error("ContactRepository:Create", "error", err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}

	var created entity.Contact
	if err := rows.StructScan(&created); err != nil {
		logger.Error("ContactRepository:Create:Scan", "error", err)
		return nil, err
	}
	return &created, nil
}

func (r *ContactRepository) Update(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	query := `
		UPDATE contacts
		SET name = :name, email = :email, phone = :phone, company = :company, updated_at = NOW()
		WHERE id = :id AND user_id = :user_id
		RETURNING ` + contactColumns

	rows, err := r.db.NamedQueryContext(ctx, query, contact)
	if err != nil {
		logger.Error("ContactRepository:Update", "error", err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var updated entity.Contact
	if err := rows.StructScan(&updated); err != nil {
		logger.Error("ContactRepository:Update:Scan", "error", err)
		return nil, err
	}
	return &updated, nil
}

func (r *ContactRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	query := `DELETE FROM contacts WHERE id = $1 AND user_id = $2`
	if err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		logger.Error("ContactRepository:Delete", "error", err)
		return err
	}
	return nil
}
