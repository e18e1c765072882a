package repository

import (
	"agenda-api/core/database"
	"agenda-api/core/logger"
	"agenda-api/modules/event/entity"
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type EventRepositoryInterface interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Event, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Event, error)
	Create(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Update(ctx context.Context, event *entity.Event) (*entity.Event, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type EventRepository struct {
	db database.Database
}

func NewEventRepository(db database.Database) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, user_id, title, description, location, start_at, end_at, event_type, attendees, source_meeting_request_id, created_at, updated_at`

// Insert writes an event through any sqlx executor, so it can join an open transaction.
func Insert(ctx context.Context, q sqlx.ExtContext, event *entity.Event) (*entity.Event, error) {
	query := `
		INSERT INTO events (user_id, title, description, location, start_at, end_at, event_type, attendees, source_meeting_request_id)
		VALUES (:user_id, :title, :description, :location, :start_at, :end_at, :event_type, :attendees, :source_meeting_request_id)
		RETURNING ` + eventColumns

	rows, err := sqlx.NamedQueryContext(ctx, q, query, event)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, sql.ErrNoRows
	}

	var created entity.Event
	if err := rows.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetBySourceRequest returns the event materialized from a meeting request, or nil.
func GetBySourceRequest(ctx context.Context, q sqlx.QueryerContext, requestID uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE source_meeting_request_id = $1`

	var event entity.Event
	if err := sqlx.GetContext(ctx, q, &event, query, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE user_id = $1 ORDER BY start_at ASC`

	events := []entity.Event{}
	if err := r.db.SelectContext(ctx, &events, query, userID); err != nil {
		logger.Error("EventRepository:ListByUser", "error", err)
		return nil, err
	}
	return events, nil
}

func (r *EventRepository) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1 AND user_id = $2`

	var event entity.Event
	if err := r.db.GetContext(ctx, &event, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("EventRepository:GetByID", "error", err)
		return nil, err
	}
	return &event, nil
}

func (r *EventRepository) Create(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	created, err := Insert(ctx, r.db.SQLx(), event)
	if err != nil {
		logger.Error("EventRepository:Create", "error", err)
		return nil, err
	}
	return created, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entity.Event) (*entity.Event, error) {
	query := `
		UPDATE events
		SET title = :title, description = :description, location = :location, start_at = :start_at,
			end_at = :end_at, event_type = :event_type, attendees = :attendees, updated_at = NOW()
		WHERE id = :id AND user_id = :user_id
		RETURNING ` + eventColumns

	rows, err := r.db.NamedQueryContext(ctx, query, event)
	if err != nil {
		logger.Error("EventRepository:Update", "error", err)
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var updated entity.Event
	if err := rows.StructScan(&updated); err != nil {
		logger.Error("EventRepository:Update:Scan", "error", err)
		return nil, err
	}
	return &updated, nil
}

func (r *EventRepository) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	query := `DELETE FROM events WHERE id = $1 AND user_id = $2`
	if err := r.db.ExecContext(ctx, query, id, userID); err != nil {
		logger.Error("EventRepository:Delete", "error", err)
		return err
	}
	return nil
}
