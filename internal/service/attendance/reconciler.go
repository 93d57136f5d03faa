package attendance

import (
	"sort"
	"time"

	"github.com/agritrack/attendance-backend-go/internal/domain/event"
)

// Shift is the derived pairing of a worker's first IN and last OUT on one
// site-local calendar day. Shifts are recomputed from events on demand and
// never persisted, so they cannot go stale.
type Shift struct {
	WorkerID string
	SiteID   string
	Day      string // YYYY-MM-DD in site-local time
	CheckIn  event.ClockEvent
	CheckOut *event.ClockEvent
	Hours    *float64 // nil while the shift has no check-out
}

type PresenceState string

const (
	PresenceOnSite     PresenceState = "on_site"
	PresenceCheckedOut PresenceState = "checked_out"
	PresenceNotArrived PresenceState = "not_yet_arrived"
)

// Reconciler pairs raw clock events into shifts. Day boundaries use a fixed
// UTC offset zone (WAT for current deployments), not an IANA timezone.
type Reconciler struct {
	zone *time.Location
}

func NewReconciler(zone *time.Location) *Reconciler {
	return &Reconciler{zone: zone}
}

// LocalDay returns the site-local calendar day of a UTC instant.
func (r *Reconciler) LocalDay(ts time.Time) string {
	return ts.In(r.zone).Format("2006-01-02")
}

// DayRangeUTC returns the UTC half-open interval [from, to) covering one
// site-local calendar day.
func (r *Reconciler) DayRangeUTC(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, r.zone)
	return start.UTC(), start.Add(24 * time.Hour).UTC()
}

// DailyShifts pairs one worker's events into at most one shift per local
// day. The first IN of the day opens the shift; the last OUT at or after it
// closes it, so a worker who leaves and returns mid-day is reported as one
// continuous shift spanning the absence. An IN with no matching OUT yields
// an open shift with nil hours. Days with only OUT events yield no shift.
func (r *Reconciler) DailyShifts(events []event.ClockEvent) []Shift {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]event.ClockEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	byDay := make(map[string][]event.ClockEvent)
	var dayOrder []string
	for _, e := range sorted {
		day := r.LocalDay(e.Timestamp)
		if _, seen := byDay[day]; !seen {
			dayOrder = append(dayOrder, day)
		}
		byDay[day] = append(byDay[day], e)
	}

	var shifts []Shift
	for _, day := range dayOrder {
		dayEvents := byDay[day]

		var checkIn *event.ClockEvent
		for i := range dayEvents {
			if dayEvents[i].EventType == event.TypeIn {
				checkIn = &dayEvents[i]
				break
			}
		}
		if checkIn == nil {
			continue
		}

		var checkOut *event.ClockEvent
		for i := len(dayEvents) - 1; i >= 0; i-- {
			e := dayEvents[i]
			if e.EventType == event.TypeOut && !e.Timestamp.Before(checkIn.Timestamp) {
				checkOut = &dayEvents[i]
				break
			}
		}

		shift := Shift{
			WorkerID: checkIn.WorkerID,
			SiteID:   checkIn.SiteID,
			Day:      day,
			CheckIn:  *checkIn,
			CheckOut: checkOut,
		}
		if checkOut != nil {
			hours := checkOut.Timestamp.Sub(checkIn.Timestamp).Hours()
			shift.Hours = &hours
		}
		shifts = append(shifts, shift)
	}

	return shifts
}

// Presence reports a worker's real-time state from the most recent event of
// the given local day: IN means on site, OUT means checked out, no event
// means not yet arrived.
func (r *Reconciler) Presence(events []event.ClockEvent, day string) (PresenceState, *event.ClockEvent) {
	var latest *event.ClockEvent
	for i := range events {
		if r.LocalDay(events[i].Timestamp) != day {
			continue
		}
		if latest == nil || events[i].Timestamp.After(latest.Timestamp) {
			latest = &events[i]
		}
	}

	if latest == nil {
		return PresenceNotArrived, nil
	}
	if latest.EventType == event.TypeIn {
		return PresenceOnSite, latest
	}
	return PresenceCheckedOut, latest
}
