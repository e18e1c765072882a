package service

import (
	"agenda-api/core/utils"
	"agenda-api/modules/event/entity"
	"strings"
	"time"
)

// FilterByRange keeps events that start at or after from and end at or before to.
// A nil bound is open.
func FilterByRange(events []entity.Event, from, to *time.Time) []entity.Event {
	out := make([]entity.Event, 0, len(events))
	for _, e := range events {
		if from != nil && e.StartAt.Before(*from) {
			continue
		}
		if to != nil && e.EndAt.After(*to) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func FilterByType(events []entity.Event, eventType string) []entity.Event {
	out := make([]entity.Event, 0, len(events))
	for _, e := range events {
		if strings.EqualFold(e.EventType, eventType) {
			out = append(out, e)
		}
	}
	return out
}

func filterByStart(events []entity.Event, from, to time.Time) []entity.Event {
	out := make([]entity.Event, 0, len(events))
	for _, e := range events {
		if utils.Within(e.StartAt, from, to) {
			out = append(out, e)
		}
	}
	return out
}

// FilterToday keeps events starting on now's calendar day in loc.
func FilterToday(events []entity.Event, now time.Time, loc *time.Location) []entity.Event {
	from, to := utils.DayBounds(now, loc)
	return filterByStart(events, from, to)
}

// FilterThisWeek keeps events starting in now's Monday-to-Sunday week in loc.
func FilterThisWeek(events []entity.Event, now time.Time, loc *time.Location) []entity.Event {
	from, to := utils.WeekBounds(now, loc)
	return filterByStart(events, from, to)
}
