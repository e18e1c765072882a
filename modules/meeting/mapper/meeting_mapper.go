package mapper

import (
	"agenda-api/modules/meeting/dto"
	"agenda-api/modules/meeting/entity"
)

func ToTimeWindowDTO(w entity.TimeWindow) dto.TimeWindowDTO {
	return dto.TimeWindowDTO{Start: w.Start, End: w.End}
}

func ToTimeWindow(w dto.TimeWindowDTO) entity.TimeWindow {
	return entity.TimeWindow{Start: w.Start, End: w.End}.UTC()
}

func ToTimeWindows(ws []dto.TimeWindowDTO) entity.TimeWindows {
	out := make(entity.TimeWindows, 0, len(ws))
	for _, w := range ws {
		out = append(out, ToTimeWindow(w))
	}
	return out
}

func ToMeetingRequestResponse(m *entity.MeetingRequest) *dto.MeetingRequestResponse {
	if m == nil {
		return nil
	}

	options := make([]dto.TimeWindowDTO, 0, len(m.Options))
	for _, w := range m.Options {
		options = append(options, ToTimeWindowDTO(w))
	}

	attendees := []string(m.Attendees)
	if attendees == nil {
		attendees = []string{}
	}

	resp := &dto.MeetingRequestResponse{
		ID:              m.ID,
		OrganizerID:     m.OrganizerID,
		Title:           m.Title,
		Description:     m.Description,
		DurationMinutes: m.DurationMinutes,
		Status:          string(m.Status),
		Options:         options,
		Attendees:       attendees,
		SelectedAt:      m.SelectedAt,
		RescheduledFrom: m.RescheduledFrom,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.SelectedOption != nil {
		selected := ToTimeWindowDTO(*m.SelectedOption)
		resp.SelectedOption = &selected
	}
	return resp
}

func ToMeetingRequestResponses(ms []entity.MeetingRequest) []dto.MeetingRequestResponse {
	out := make([]dto.MeetingRequestResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *ToMeetingRequestResponse(&ms[i]))
	}
	return out
}
