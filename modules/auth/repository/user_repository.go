package repository

import (
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/auth/entity"
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// UserRepositoryInterface defines the user store contract
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmails(ctx context.Context, emails []string) ([]entity.User, error)
	CreateIfMissing(ctx context.Context, user *entity.User) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

type UserRepository struct {
	DB database.Database
}

func NewUserRepository(db database.Database) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, provider_subject, name, email, timezone, notification_settings, calendar_preferences, created_at, updated_at`

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user entity.User
	if err := r.DB.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("UserRepository:GetByID", "error", err)
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmails(ctx context.Context, emails []string) ([]entity.User, error) {
	if len(emails) == 0 {
		return []entity.User{}, nil
	}

	lowered := make([]string, 0, len(emails))
	for _, e := range emails {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(e)))
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = ANY($1)`

	var users []entity.User
	if err := r.DB.SelectContext(ctx, &users, query, pq.StringArray(lowered)); err != nil {
		logger.Error("UserRepository:GetByEmails", "error", err)
		return nil, err
	}
	return users, nil
}

// CreateIfMissing inserts the user unless one with the same id exists, then returns the stored row.
func (r *UserRepository) CreateIfMissing(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `
		INSERT INTO users (id, provider_subject, name, email, timezone, notification_settings, calendar_preferences)
		VALUES (:id, :provider_subject, :name, :email, :timezone, :notification_settings, :calendar_preferences)
		ON CONFLICT (id) DO NOTHING
	`

	var stored entity.User
	err := r.DB.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, query, user); err != nil {
			return err
		}
		return tx.GetContext(ctx, &stored, `SELECT `+userColumns+` FROM users WHERE id = $1`, user.ID)
	})
	if err != nil {
		logger.Error("UserRepository:CreateIfMissing", "error", err, "user_id", user.ID)
		return nil, err
	}
	return &stored, nil
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users
		SET name = :name, timezone = :timezone, notification_settings = :notification_settings,
		    calendar_preferences = :calendar_preferences, updated_at = NOW()
		WHERE id = :id
	`
	if _, err := r.DB.NamedExecContext(ctx, query, user); err != nil {
		logger.Error("UserRepository:Update", "error", err, "user_id", user.ID)
		return err
	}
	return nil
}
