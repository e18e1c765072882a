package service

import (
	"agenda-api/modules/meeting/entity"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlotFinder_ParsesWorkingHours(t *testing.T) {
	sf := NewSlotFinder("08:30", "18:00", nil)
	assert.Equal(t, 8*60+30, sf.WorkStart)
	assert.Equal(t, 18*60, sf.WorkEnd)
	assert.Equal(t, time.UTC, sf.Location)

	for _, bad := range [][2]string{{"", ""}, {"nine", "17:00"}, {"17:00", "09:00"}, {"24:30", "25:00"}} {
		sf := NewSlotFinder(bad[0], bad[1], time.UTC)
		assert.Equal(t, 9*60, sf.WorkStart, "start for %v", bad)
		assert.Equal(t, 17*60, sf.WorkEnd, "end for %v", bad)
	}
}

func TestMergeOverlapping(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2025, 3, 13, h, 0, 0, 0, time.UTC) }

	merged := mergeOverlapping([]entity.TimeWindow{
		{Start: at(13), End: at(14)},
		{Start: at(9), End: at(11)},
		{Start: at(10), End: at(12)},
		{Start: at(12), End: at(13)},
		{Start: at(16), End: at(17)},
	})

	require.Len(t, merged, 2)
	assert.True(t, merged[0].Start.Equal(at(9)))
	assert.True(t, merged[0].End.Equal(at(14)))
	assert.True(t, merged[1].Start.Equal(at(16)))
}

func TestFindAvailableSlots_UsesLocalWorkingHours(t *testing.T) {
	loc, err := time.LoadLocation("America/El_Salvador")
	require.NoError(t, err)
	sf := NewSlotFinder("09:00", "12:00", loc)

	now := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	from := time.Date(2025, 3, 13, 0, 0, 0, 0, loc)
	to := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)

	slots := sf.FindAvailableSlots(60, from, to, nil, SlotPreferences{Limit: 20}, now)

	// 09:00 through 11:00 local, every half hour
	require.Len(t, slots, 5)
	for _, s := range slots {
		local := s.Start.In(loc)
		assert.GreaterOrEqual(t, local.Hour(), 9)
		assert.LessOrEqual(t, s.End.In(loc).Hour(), 12)
		assert.Equal(t, time.UTC, s.Start.Location())
	}
}

func TestFindAvailableSlots_SkipsWeekendsAndPast(t *testing.T) {
	sf := NewSlotFinder("09:00", "17:00", time.UTC)

	// Saturday 15 March through Monday 17 March
	from := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 3, 17, 10, 10, 0, 0, time.UTC)

	slots := sf.FindAvailableSlots(30, from, to, nil, SlotPreferences{ExcludeWeekends: true, Limit: 50}, now)
	require.NotEmpty(t, slots)
	for _, s := range slots {
		assert.Equal(t, time.Monday, s.Start.Weekday())
		assert.False(t, s.Start.Before(now))
	}
}

func TestFindAvailableSlots_RanksPreferredHoursFirst(t *testing.T) {
	sf := NewSlotFinder("09:00", "17:00", time.UTC)
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	from := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)

	slots := sf.FindAvailableSlots(60, from, to, nil, SlotPreferences{PreferAfternoon: true, Limit: 3}, now)
	require.Len(t, slots, 3)
	// equal scores keep chronological order
	assert.Equal(t, "14:00", slots[0].Start.Format("15:04"))
	assert.Equal(t, "14:30", slots[1].Start.Format("15:04"))
	assert.Equal(t, "15:00", slots[2].Start.Format("15:04"))
	assert.Equal(t, slots[0].Score, slots[2].Score)
}

func TestFindAvailableSlots_EmptyRange(t *testing.T) {
	sf := NewSlotFinder("09:00", "17:00", time.UTC)
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, sf.FindAvailableSlots(60, now.Add(time.Hour), now, nil, SlotPreferences{}, now))
	assert.Empty(t, sf.FindAvailableSlots(0, now, now.Add(24*time.Hour), nil, SlotPreferences{}, now))
}
