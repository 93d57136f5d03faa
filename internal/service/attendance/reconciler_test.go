package attendance

import (
	"testing"
	"time"

	"github.com/agritrack/attendance-backend-go/internal/domain/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wat = time.FixedZone("WAT", 3600)

func clockEvent(eventType event.Type, ts string) event.ClockEvent {
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		panic(err)
	}
	return event.ClockEvent{
		WorkerID:  "worker-1",
		SiteID:    "site-1",
		EventType: eventType,
		Timestamp: parsed.UTC(),
	}
}

func TestDailyShifts_SimplePair(t *testing.T) {
	r := NewReconciler(wat)

	shifts := r.DailyShifts([]event.ClockEvent{
		clockEvent(event.TypeIn, "2024-01-10T06:05:00Z"),
		clockEvent(event.TypeOut, "2024-01-10T14:00:00Z"),
	})

	require.Len(t, shifts, 1)
	assert.Equal(t, "2024-01-10", shifts[0].Day)
	require.NotNil(t, shifts[0].Hours)
	// 06:05 to 14:00 is 7h55m
	assert.InDelta(t, 7.9167, *shifts[0].Hours, 0.001)
}

func TestDailyShifts_OpenShiftHasNilHours(t *testing.T) {
	r := NewReconciler(wat)

	shifts := r.DailyShifts([]event.ClockEvent{
		clockEvent(event.TypeIn, "2024-01-10T06:05:00Z"),
	})

	require.Len(t, shifts, 1)
	assert.Nil(t, shifts[0].CheckOut)
	assert.Nil(t, shifts[0].Hours, "open shift duration must be nil, not zero")
}

func TestDailyShifts_FirstInLastOutEnvelope(t *testing.T) {
	r := NewReconciler(wat)

	// Worker leaves for a midday break and returns; the day must collapse
	// into one shift spanning the absence.
	shifts := r.DailyShifts([]event.ClockEvent{
		clockEvent(event.TypeIn, "2024-01-10T06:00:00Z"),
		clockEvent(event.TypeOut, "2024-01-10T11:00:00Z"),
		clockEvent(event.TypeIn, "2024-01-10T12:00:00Z"),
		clockEvent(event.TypeOut, "2024-01-10T16:00:00Z"),
	})

	require.Len(t, shifts, 1)
	require.NotNil(t, shifts[0].Hours)
	assert.InDelta(t, 10.0, *shifts[0].Hours, 0.001)
	assert.Equal(t, "2024-01-10T06:00:00Z", shifts[0].CheckIn.Timestamp.Format(time.RFC3339))
	assert.Equal(t, "2024-01-10T16:00:00Z", shifts[0].CheckOut.Timestamp.Format(time.RFC3339))
}

func TestDailyShifts_OutOfOrderArrival(t *testing.T) {
	r := NewReconciler(wat)

	// Offline sync can deliver events in any order.
	shifts := r.DailyShifts([]event.ClockEvent{
		clockEvent(event.TypeOut, "2024-01-10T14:00:00Z"),
		clockEvent(event.TypeIn, "2024-01-10T06:05:00Z"),
	})

	require.Len(t, shifts, 1)
	require.NotNil(t, shifts[0].Hours)
	assert.InDelta(t, 7.9167, *shifts[0].Hours, 0.001)
}

func TestDailyShifts_OutBeforeInIgnored(t *testing.T) {
	r := NewReconciler(wat)

	// A stray OUT before the first IN must not close the shift.
	shifts := r.DailyShifts([]event.ClockEvent{
		clockEvent(event.TypeOut, "2024-01-10T05:00:00Z"),
		clockEvent(event.TypeIn, "2024-01-10T06:00:00Z"),
	})

	require.Len(t, shifts, 1)
	assert.Nil(t, shifts[0].CheckOut)
	assert.Nil(t, shifts[0].Hours)
}

func TestDailyShifts_OnlyOutYieldsNoShift(t *testing.T) {
	r := NewReconciler(wat)

	shifts := r.DailyShifts([]event.ClockEvent{
		clockEvent(event.TypeOut, "2024-01-10T14:00:00Z"),
	})

	assert.Empty(t, shifts)
}

func TestDailyShifts_LocalDayBoundary(t *testing.T) {
	r := NewReconciler(wat)

	// 23:30 UTC on Jan 9 is 00:30 WAT on Jan 10: both events land on the
	// same local day and pair into one shift.
	shifts := r.DailyShifts([]event.ClockEvent{
		clockEvent(event.TypeIn, "2024-01-09T23:30:00Z"),
		clockEvent(event.TypeOut, "2024-01-10T05:30:00Z"),
	})

	require.Len(t, shifts, 1)
	assert.Equal(t, "2024-01-10", shifts[0].Day)
	require.NotNil(t, shifts[0].Hours)
	assert.InDelta(t, 6.0, *shifts[0].Hours, 0.001)
}

func TestDailyShifts_MultipleDays(t *testing.T) {
	r := NewReconciler(wat)

	shifts := r.DailyShifts([]event.ClockEvent{
		clockEvent(event.TypeIn, "2024-01-10T06:00:00Z"),
		clockEvent(event.TypeOut, "2024-01-10T14:00:00Z"),
		clockEvent(event.TypeIn, "2024-01-11T06:30:00Z"),
		clockEvent(event.TypeIn, "2024-01-12T07:00:00Z"),
		clockEvent(event.TypeOut, "2024-01-12T15:00:00Z"),
	})

	require.Len(t, shifts, 3)
	assert.Equal(t, "2024-01-10", shifts[0].Day)
	assert.Equal(t, "2024-01-11", shifts[1].Day)
	assert.Nil(t, shifts[1].Hours)
	assert.Equal(t, "2024-01-12", shifts[2].Day)
	require.NotNil(t, shifts[2].Hours)
	assert.InDelta(t, 8.0, *shifts[2].Hours, 0.001)
}

func TestPresence(t *testing.T) {
	r := NewReconciler(wat)

	events := []event.ClockEvent{
		clockEvent(event.TypeIn, "2024-01-10T06:00:00Z"),
		clockEvent(event.TypeOut, "2024-01-10T11:00:00Z"),
		clockEvent(event.TypeIn, "2024-01-10T12:00:00Z"),
	}

	state, latest := r.Presence(events, "2024-01-10")
	assert.Equal(t, PresenceOnSite, state)
	require.NotNil(t, latest)
	assert.Equal(t, "2024-01-10T12:00:00Z", latest.Timestamp.Format(time.RFC3339))

	state, latest = r.Presence(events[:2], "2024-01-10")
	assert.Equal(t, PresenceCheckedOut, state)
	require.NotNil(t, latest)

	state, latest = r.Presence(events, "2024-01-11")
	assert.Equal(t, PresenceNotArrived, state)
	assert.Nil(t, latest)
}
