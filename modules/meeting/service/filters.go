package service

import (
	"agenda-api/modules/meeting/dto"
	"agenda-api/modules/meeting/entity"
)

func FilterByStatus(reqs []entity.MeetingRequest, status entity.Status) []entity.MeetingRequest {
	out := make([]entity.MeetingRequest, 0, len(reqs))
	for _, r := range reqs {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

func Stats(reqs []entity.MeetingRequest) dto.MeetingStats {
	stats := dto.MeetingStats{Total: len(reqs)}
	for _, r := range reqs {
		switch r.Status {
		case entity.StatusPending:
			stats.Pending++
		case entity.StatusAccepted:
			stats.Accepted++
		case entity.StatusDeclined:
			stats.Declined++
		}
	}
	return stats
}
