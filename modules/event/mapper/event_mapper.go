package mapper

import (
	"agenda-api/modules/event/dto"
	"agenda-api/modules/event/entity"
)

func ToEventResponse(event *entity.Event) *dto.EventResponse {
	if event == nil {
		return nil
	}

	attendees := []string(event.Attendees)
	if attendees == nil {
		attendees = []string{}
	}

	return &dto.EventResponse{
		ID:                     event.ID,
		Title:                  event.Title,
		Description:            event.Description,
		Location:               event.Location,
		StartAt:                event.StartAt,
		EndAt:                  event.EndAt,
		EventType:              event.EventType,
		Attendees:              attendees,
		SourceMeetingRequestID: event.SourceMeetingRequestID,
		CreatedAt:              event.CreatedAt,
		UpdatedAt:              event.UpdatedAt,
	}
}

func ToEventResponses(events []entity.Event) []dto.EventResponse {
	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *ToEventResponse(&events[i]))
	}
	return out
}
