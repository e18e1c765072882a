package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.False(t, Status("cancelled").Valid())

	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusAccepted.Terminal())
	assert.True(t, StatusDeclined.Terminal())
}

func TestTimeWindows_FindByInstant(t *testing.T) {
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	ws := TimeWindows{{Start: start, End: start.Add(time.Hour)}}

	madrid := time.FixedZone("CET", 3600)
	found, ok := ws.Find(TimeWindow{Start: start.In(madrid), End: start.Add(time.Hour).In(madrid)})
	require.True(t, ok)
	assert.Equal(t, time.UTC, found.Start.Location())

	_, ok = ws.Find(TimeWindow{Start: start, End: start.Add(30 * time.Minute)})
	assert.False(t, ok)
}

func TestTimeWindows_ScanValue(t *testing.T) {
	start := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	ws := TimeWindows{{Start: start, End: start.Add(time.Hour)}}

	raw, err := ws.Value()
	require.NoError(t, err)

	var back TimeWindows
	require.NoError(t, back.Scan(raw))
	require.Len(t, back, 1)
	assert.True(t, back[0].Equal(ws[0]))

	raw, err = TimeWindows(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), raw)

	require.NoError(t, back.Scan(nil))
	assert.Empty(t, back)
}

func TestTimeWindow_Overlaps(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2025, 3, 14, h, 0, 0, 0, time.UTC) }
	a := TimeWindow{Start: at(9), End: at(10)}

	assert.True(t, a.Overlaps(TimeWindow{Start: at(9), End: at(11)}))
	assert.False(t, a.Overlaps(TimeWindow{Start: at(10), End: at(11)}))
}

func TestMeetingRequest_Involves(t *testing.T) {
	m := &MeetingRequest{Attendees: []string{"bruno@example.com"}}
	assert.True(t, m.Involves("Bruno@Example.com"))
	assert.False(t, m.Involves("eve@example.com"))
	assert.False(t, m.Involves(""))
}
