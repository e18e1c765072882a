package repository

import (
	"agenda-api/core/database"
	"agenda-api/core/logger"
	eventEntity "agenda-api/modules/event/entity"
	eventRepository "agenda-api/modules/event/repository"
	"agenda-api/modules/meeting/entity"
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrNotPending is returned when a transition loses to a concurrent one.
var ErrNotPending = errors.New("meeting request is no longer pending")

type MeetingRepositoryInterface interface {
	Create(ctx context.Context, req *entity.MeetingRequest) (*entity.MeetingRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MeetingRequest, error)
	ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.MeetingRequest, error)
	ListInvited(ctx context.Context, email string) ([]entity.MeetingRequest, error)
	Update(ctx context.Context, req *entity.MeetingRequest) (*entity.MeetingRequest, error)
	Delete(ctx context.Context, organizerID uuid.UUID, id uuid.UUID) error

	Accept(ctx context.Context, id uuid.UUID, option entity.TimeWindow, at time.Time, event *eventEntity.Event) (*entity.MeetingRequest, *eventEntity.Event, error)
	Decline(ctx context.Context, id uuid.UUID, at time.Time) (*entity.MeetingRequest, error)
	FindEvent(ctx context.Context, requestID uuid.UUID) (*eventEntity.Event, error)
	InsertEvent(ctx context.Context, event *eventEntity.Event) (*eventEntity.Event, error)
}

type MeetingRepository struct {
	db database.Database
}

func NewMeetingRepository(db database.Database) *MeetingRepository {
	return &MeetingRepository{db: db}
}

const meetingColumns = `id, organizer_id, title, description, duration_minutes, status, options, attendees, selected_option, selected_at, rescheduled_from, created_at, updated_at`

func scanOne(rows *sqlx.Rows) (*entity.MeetingRequest, error) {
	if !rows.Next() {
		return nil, rows.Err()
	}
	var req entity.MeetingRequest
	if err := rows.StructScan(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *MeetingRepository) Create(ctx context.Context, req *entity.MeetingRequest) (*entity.MeetingRequest, error) {
	query := `
		INSERT INTO meeting_requests (organizer_id, title, description, duration_minutes, status, options, attendees, rescheduled_from)
		VALUES (:organizer_id, :title, :description, :duration_minutes, :status, :options, :attendees, :rescheduled_from)
		RETURNING ` + meetingColumns

	rows, err := r.db.NamedQueryContext(ctx, query, req)
	if err != nil {
		logger.Error("MeetingRepository:Create", "error", err)
		return nil, err
	}
	defer rows.Close()

	created, err := scanOne(rows)
	if err != nil {
		logger.Error("MeetingRepository:Create:Scan", "error", err)
		return nil, err
	}
	if created == nil {
		return nil, sql.ErrNoRows
	}
	return created, nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MeetingRequest, error) {
	query := `SELECT ` + meetingColumns + ` FROM meeting_requests WHERE id = $1`

	var req entity.MeetingRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetByID", "error", err)
		return nil, err
	}
	return &req, nil
}

func (r *MeetingRepository) ListByOrganizer(ctx context.Context, organizerID uuid.UUID) ([]entity.MeetingRequest, error) {
	query := `SELECT ` + meetingColumns + ` FROM meeting_requests WHERE organizer_id = $1 ORDER BY created_at DESC`

	reqs := []entity.MeetingRequest{}
	if err := r.db.SelectContext(ctx, &reqs, query, organizerID); err != nil {
		logger.Error("MeetingRepository:ListByOrganizer", "error", err)
		return nil, err
	}
	return reqs, nil
}

// ListInvited returns requests whose attendee list contains email. Attendees are stored lowercased.
func (r *MeetingRepository) ListInvited(ctx context.Context, email string) ([]entity.MeetingRequest, error) {
	query := `
		SELECT ` + meetingColumns + ` FROM meeting_requests
		WHERE $1 = ANY(attendees)
		ORDER BY created_at DESC`

	reqs := []entity.MeetingRequest{}
	if err := r.db.SelectContext(ctx, &reqs, query, strings.ToLower(email)); err != nil {
		logger.Error("MeetingRepository:ListInvited", "error", err)
		return nil, err
	}
	return reqs, nil
}

// Update rewrites the editable fields of a pending request. It returns nil when the
// request is gone or has already been resolved.
func (r *MeetingRepository) Update(ctx context.Context, req *entity.MeetingRequest) (*entity.MeetingRequest, error) {
	query := `
		UPDATE meeting_requests
		SET title = :title, description = :description, duration_minutes = :duration_minutes,
			options = :options, attendees = :attendees, updated_at = NOW()
		WHERE id = :id AND organizer_id = :organizer_id AND status = 'pending'
		RETURNING ` + meetingColumns

	rows, err := r.db.NamedQueryContext(ctx, query, req)
	if err != nil {
		logger.Error("MeetingRepository:Update", "error", err)
		return nil, err
	}
	defer rows.Close()

	updated, err := scanOne(rows)
	if err != nil {
		logger.Error("MeetingRepository:Update:Scan", "error", err)
		return nil, err
	}
	return updated, nil
}

func (r *MeetingRepository) Delete(ctx context.Context, organizerID uuid.UUID, id uuid.UUID) error {
	query := `DELETE FROM meeting_requests WHERE id = $1 AND organizer_id = $2`
	if err := r.db.ExecContext(ctx, query, id, organizerID); err != nil {
		logger.Error("MeetingRepository:Delete", "error", err)
		return err
	}
	return nil
}

// Accept marks the request accepted and inserts its event in a single transaction.
// ErrNotPending means another transition committed first and nothing was written.
func (r *MeetingRepository) Accept(ctx context.Context, id uuid.UUID, option entity.TimeWindow, at time.Time, event *eventEntity.Event) (*entity.MeetingRequest, *eventEntity.Event, error) {
	var (
		accepted *entity.MeetingRequest
		created  *eventEntity.Event
	)

	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE meeting_requests
			SET status = 'accepted', selected_option = $2, selected_at = $3, updated_at = NOW()
			WHERE id = $1 AND status = 'pending'
			RETURNING ` + meetingColumns

		var req entity.MeetingRequest
		if err := tx.GetContext(ctx, &req, query, id, option, at); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotPending
			}
			return err
		}
		accepted = &req

		ev, err := eventRepository.Insert(ctx, tx, event)
		if err != nil {
			return err
		}
		created = ev
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrNotPending) {
			logger.Error("MeetingRepository:Accept", "error", err)
		}
		return nil, nil, err
	}
	return accepted, created, nil
}

func (r *MeetingRepository) Decline(ctx context.Context, id uuid.UUID, at time.Time) (*entity.MeetingRequest, error) {
	query := `
		UPDATE meeting_requests
		SET status = 'declined', selected_at = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + meetingColumns

	var req entity.MeetingRequest
	if err := r.db.GetContext(ctx, &req, query, id, at); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotPending
		}
		logger.Error("MeetingRepository:Decline", "error", err)
		return nil, err
	}
	return &req, nil
}

func (r *MeetingRepository) FindEvent(ctx context.Context, requestID uuid.UUID) (*eventEntity.Event, error) {
	ev, err := eventRepository.GetBySourceRequest(ctx, r.db.SQLx(), requestID)
	if err != nil {
		logger.Error("MeetingRepository:FindEvent", "error", err)
		return nil, err
	}
	return ev, nil
}

// InsertEvent creates the event for an accepted request. A concurrent insert that wins
// the unique index is returned instead of an error.
func (r *MeetingRepository) InsertEvent(ctx context.Context, event *eventEntity.Event) (*eventEntity.Event, error) {
	created, err := eventRepository.Insert(ctx, r.db.SQLx(), event)
	if err == nil {
		return created, nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" && event.SourceMeetingRequestID != nil {
		return r.FindEvent(ctx, *event.SourceMeetingRequestID)
	}
	logger.Error("MeetingRepository:InsertEvent", "error", err)
	return nil, err
}
