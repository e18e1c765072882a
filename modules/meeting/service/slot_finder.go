package service

import (
	"agenda-api/modules/meeting/entity"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	slotStep           = 30 * time.Minute
	defaultSuggestions = 10
)

// SlotPreferences narrows and ranks the generated candidates.
type SlotPreferences struct {
	ExcludeWeekends bool
	PreferMorning   bool
	PreferAfternoon bool
	Limit           int
}

type ScoredWindow struct {
	entity.TimeWindow
	Score int
}

// SlotFinder proposes free windows inside working hours, evaluated in one location.
type SlotFinder struct {
	// WorkStart and WorkEnd are minutes after local midnight
	WorkStart int
	WorkEnd   int
	Location  *time.Location
}

// NewSlotFinder parses "HH:MM" working hours, falling back to 09:00-17:00.
func NewSlotFinder(start, end string, loc *time.Location) *SlotFinder {
	if loc == nil {
		loc = time.UTC
	}
	sf := &SlotFinder{WorkStart: 9 * 60, WorkEnd: 17 * 60, Location: loc}
	s, okStart := parseClock(start)
	e, okEnd := parseClock(end)
	if okStart && okEnd && s < e {
		sf.WorkStart, sf.WorkEnd = s, e
	}
	return sf
}

func parseClock(v string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(v), ":")
	if !ok {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 24 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 || hour == 24 && minute != 0 {
		return 0, false
	}
	return hour*60 + minute, true
}

// FindAvailableSlots returns the best free windows of the given length between from and to.
func (sf *SlotFinder) FindAvailableSlots(durationMinutes int, from, to time.Time, busy []entity.TimeWindow, prefs SlotPreferences, now time.Time) []ScoredWindow {
	if durationMinutes <= 0 || !to.After(from) {
		return []ScoredWindow{}
	}
	if from.Before(now) {
		from = now
	}

	merged := mergeOverlapping(busy)
	candidates := sf.generate(from, to, time.Duration(durationMinutes)*time.Minute, prefs)
	free := filterBusy(candidates, merged)
	scored := sf.score(free, prefs, now)

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Start.Before(scored[j].Start)
	})

	limit := prefs.Limit
	if limit <= 0 {
		limit = defaultSuggestions
	}
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}

func mergeOverlapping(slots []entity.TimeWindow) []entity.TimeWindow {
	if len(slots) == 0 {
		return nil
	}

	sorted := make([]entity.TimeWindow, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []entity.TimeWindow{sorted[0]}
	for _, current := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !current.Start.After(last.End) {
			if current.End.After(last.End) {
				last.End = current.End
			}
			continue
		}
		merged = append(merged, current)
	}
	return merged
}

// generate walks the range in half-hour steps, keeping windows that fit inside one working day.
func (sf *SlotFinder) generate(from, to time.Time, duration time.Duration, prefs SlotPreferences) []entity.TimeWindow {
	slots := []entity.TimeWindow{}

	current := roundToNextHalfHour(from.In(sf.Location))
	for !current.Add(duration).After(to) {
		end := current.Add(duration)

		if prefs.ExcludeWeekends && isWeekend(current.Weekday()) {
			current = sf.nextDayStart(current)
			continue
		}

		startMin := current.Hour()*60 + current.Minute()
		if startMin < sf.WorkStart {
			current = sf.dayStart(current)
			continue
		}
		endMin := startMin + int(duration/time.Minute)
		if endMin > sf.WorkEnd {
			current = sf.nextDayStart(current)
			continue
		}

		slots = append(slots, entity.TimeWindow{Start: current, End: end}.UTC())
		current = current.Add(slotStep)
	}
	return slots
}

func (sf *SlotFinder) dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, sf.WorkStart, 0, 0, sf.Location)
}

func (sf *SlotFinder) nextDayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, sf.WorkStart, 0, 0, sf.Location)
}

func filterBusy(slots []entity.TimeWindow, busy []entity.TimeWindow) []entity.TimeWindow {
	free := []entity.TimeWindow{}
	for _, slot := range slots {
		clear := true
		for _, b := range busy {
			if slot.Overlaps(b) {
				clear = false
				break
			}
		}
		if clear {
			free = append(free, slot)
		}
	}
	return free
}

func (sf *SlotFinder) score(slots []entity.TimeWindow, prefs SlotPreferences, now time.Time) []ScoredWindow {
	result := make([]ScoredWindow, len(slots))

	for i, slot := range slots {
		local := slot.Start.In(sf.Location)
		hour := local.Hour()
		score := 50

		if prefs.PreferMorning && hour < 12 {
			score += 30
		}
		if prefs.PreferAfternoon && hour >= 13 {
			score += 30
		}

		// common meeting hours
		if hour == 9 || hour == 10 || hour == 14 || hour == 15 {
			score += 20
		}

		switch local.Weekday() {
		case time.Monday, time.Tuesday, time.Wednesday:
			score += 15
		case time.Thursday, time.Friday:
			score += 10
		}

		days := int(slot.Start.Sub(now).Hours() / 24)
		if days <= 3 {
			score += 10
		} else if days <= 7 {
			score += 5
		}

		result[i] = ScoredWindow{TimeWindow: slot, Score: score}
	}
	return result
}

func roundToNextHalfHour(t time.Time) time.Time {
	t = t.Add(time.Minute - time.Nanosecond).Truncate(time.Minute)
	minute := t.Minute()
	if minute == 0 || minute == 30 {
		return t
	}
	if minute < 30 {
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 30, 0, 0, t.Location())
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour()+1, 0, 0, 0, t.Location())
}

func isWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}
