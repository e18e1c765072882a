//go:build integration

package repository

import (
	"agenda-api/core/database"
	eventEntity "agenda-api/modules/event/entity"
	"agenda-api/modules/meeting/entity"
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
)

// Run with: TEST_DB_HOST=localhost go test -tags integration ./modules/meeting/repository/...
type MeetingRepositorySuite struct {
	suite.Suite
	db          database.Database
	repo        *MeetingRepository
	organizerID uuid.UUID
	ctx         context.Context
}

func TestMeetingRepositorySuite(t *testing.T) {
	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("TEST_DB_HOST not set")
	}
	suite.Run(t, new(MeetingRepositorySuite))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (s *MeetingRepositorySuite) SetupSuite() {
	port, err := strconv.Atoi(envOr("TEST_DB_PORT", "5432"))
	s.Require().NoError(err)

	s.db, err = database.InitDB(database.DatabaseConfig{
		Host:         os.Getenv("TEST_DB_HOST"),
		Port:         port,
		User:         envOr("TEST_DB_USER", "postgres"),
		Password:     envOr("TEST_DB_PASSWORD", "postgres"),
		DBName:       envOr("TEST_DB_NAME", "agenda_test"),
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.db.MigrateUp())

	s.repo = NewMeetingRepository(s.db)
	s.ctx = context.Background()
}

func (s *MeetingRepositorySuite) TearDownSuite() {
	_ = s.db.Close()
}

func (s *MeetingRepositorySuite) SetupTest() {
	s.organizerID = uuid.New()
	s.Require().NoError(s.db.ExecContext(s.ctx,
		`INSERT INTO users (id, provider_subject, name, email) VALUES ($1, $2, $3, $4)`,
		s.organizerID, "test:"+s.organizerID.String(), "Ana", "ana@example.com"))
}

func (s *MeetingRepositorySuite) TearDownTest() {
	s.Require().NoError(s.db.ExecContext(s.ctx, `DELETE FROM users WHERE id = $1`, s.organizerID))
}

func slot(hour int) entity.TimeWindow {
	start := time.Date(2025, 3, 14, hour, 0, 0, 0, time.UTC)
	return entity.TimeWindow{Start: start, End: start.Add(time.Hour)}
}

func (s *MeetingRepositorySuite) pending() *entity.MeetingRequest {
	created, err := s.repo.Create(s.ctx, &entity.MeetingRequest{
		OrganizerID:     s.organizerID,
		Title:           "Planning",
		DurationMinutes: 60,
		Status:          entity.StatusPending,
		Options:         entity.TimeWindows{slot(10), slot(14)},
		Attendees:       pq.StringArray{"bruno@example.com"},
	})
	s.Require().NoError(err)
	return created
}

func (s *MeetingRepositorySuite) eventFor(req *entity.MeetingRequest, option entity.TimeWindow) *eventEntity.Event {
	id := req.ID
	return &eventEntity.Event{
		UserID:                 req.OrganizerID,
		Title:                  req.Title,
		StartAt:                option.Start,
		EndAt:                  option.End,
		EventType:              eventEntity.EventTypeMeeting,
		Attendees:              pq.StringArray{},
		SourceMeetingRequestID: &id,
	}
}

func (s *MeetingRepositorySuite) TestAccept_IsFinal() {
	req := s.pending()
	option := slot(14)

	accepted, event, err := s.repo.Accept(s.ctx, req.ID, option, time.Now(), s.eventFor(req, option))
	s.Require().NoError(err)
	s.Equal(entity.StatusAccepted, accepted.Status)
	s.Require().NotNil(accepted.SelectedOption)
	s.True(accepted.SelectedOption.Equal(option))
	s.Equal(req.ID, *event.SourceMeetingRequestID)

	_, _, err = s.repo.Accept(s.ctx, req.ID, slot(10), time.Now(), s.eventFor(req, slot(10)))
	s.ErrorIs(err, ErrNotPending)

	_, err = s.repo.Decline(s.ctx, req.ID, time.Now())
	s.ErrorIs(err, ErrNotPending)

	found, err := s.repo.FindEvent(s.ctx, req.ID)
	s.Require().NoError(err)
	s.Equal(event.ID, found.ID)
	s.True(found.StartAt.Equal(option.Start))
}

func (s *MeetingRepositorySuite) TestAccept_RollsBackWhenEventInsertFails() {
	req := s.pending()
	option := slot(10)

	broken := s.eventFor(req, option)
	broken.EndAt = broken.StartAt.Add(-time.Minute)

	_, _, err := s.repo.Accept(s.ctx, req.ID, option, time.Now(), broken)
	s.Require().Error(err)
	s.NotErrorIs(err, ErrNotPending)

	current, err := s.repo.GetByID(s.ctx, req.ID)
	s.Require().NoError(err)
	s.Equal(entity.StatusPending, current.Status)
	s.Nil(current.SelectedOption)

	event, err := s.repo.FindEvent(s.ctx, req.ID)
	s.Require().NoError(err)
	s.Nil(event)
}

func (s *MeetingRepositorySuite) TestDecline_LeavesNoSelection() {
	req := s.pending()

	declined, err := s.repo.Decline(s.ctx, req.ID, time.Now())
	s.Require().NoError(err)
	s.Equal(entity.StatusDeclined, declined.Status)
	s.Nil(declined.SelectedOption)

	_, _, err = s.repo.Accept(s.ctx, req.ID, slot(10), time.Now(), s.eventFor(req, slot(10)))
	s.ErrorIs(err, ErrNotPending)
}

func (s *MeetingRepositorySuite) TestInsertEvent_ReturnsExistingOnDuplicate() {
	req := s.pending()
	option := slot(14)

	accepted, first, err := s.repo.Accept(s.ctx, req.ID, option, time.Now(), s.eventFor(req, option))
	s.Require().NoError(err)

	again, err := s.repo.InsertEvent(s.ctx, s.eventFor(accepted, option))
	s.Require().NoError(err)
	s.Equal(first.ID, again.ID)
}

func (s *MeetingRepositorySuite) TestSchema_SelectedOptionOnlyWhenAccepted() {
	req := s.pending()

	err := s.db.ExecContext(s.ctx, `UPDATE meeting_requests SET status = 'accepted' WHERE id = $1`, req.ID)
	s.Error(err)

	err = s.db.ExecContext(s.ctx, `UPDATE meeting_requests SET selected_option = $2 WHERE id = $1`, req.ID, slot(10))
	s.Error(err)
}

func (s *MeetingRepositorySuite) TestListInvited_MatchesLowercasedEmail() {
	req := s.pending()

	invited, err := s.repo.ListInvited(s.ctx, "Bruno@Example.com")
	s.Require().NoError(err)

	var ids []uuid.UUID
	for _, r := range invited {
		ids = append(ids, r.ID)
	}
	s.Contains(ids, req.ID)
}
