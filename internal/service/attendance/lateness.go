package attendance

import (
	"math"
	"time"
)

const fallbackCheckinStart = "06:00:00"

// Classifier compares check-in instants against a site's configured arrival
// window, in the fixed site-local zone.
type Classifier struct {
	zone         *time.Location
	defaultStart time.Time
}

// NewClassifier builds a classifier with the configured default window
// start, used for sites that have no check-in window of their own.
func NewClassifier(zone *time.Location, defaultStart string) *Classifier {
	start, err := time.Parse("15:04:05", defaultStart)
	if err != nil {
		start, _ = time.Parse("15:04:05", fallbackCheckinStart)
	}
	return &Classifier{zone: zone, defaultStart: start}
}

// WindowStart resolves the effective arrival window start for a site.
func (c *Classifier) WindowStart(siteWindow *time.Time) time.Time {
	if siteWindow != nil {
		return *siteWindow
	}
	return c.defaultStart
}

// Classify reports whether a check-in is late and by how many minutes.
// A check-in at the window start exactly is on time; anything after is late,
// with partial minutes rounded up so a one-second overrun counts as one
// minute. The comparison is same-day only; windows never wrap midnight.
func (c *Classifier) Classify(checkInUTC time.Time, siteWindow *time.Time) (bool, int) {
	local := checkInUTC.In(c.zone)
	window := c.WindowStart(siteWindow)

	expected := time.Date(
		local.Year(), local.Month(), local.Day(),
		window.Hour(), window.Minute(), window.Second(), 0,
		c.zone,
	)

	if !local.After(expected) {
		return false, 0
	}

	minutesLate := int(math.Ceil(local.Sub(expected).Seconds() / 60.0))
	return true, minutesLate
}
