package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func timeOfDay(s string) *time.Time {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		panic(err)
	}
	return &t
}

func utcInstant(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func TestClassify_Boundary(t *testing.T) {
	c := NewClassifier(time.UTC, "06:00:00")

	// Exactly at the window start is on time.
	late, minutes := c.Classify(utcInstant("2024-01-10T06:00:00Z"), nil)
	assert.False(t, late)
	assert.Equal(t, 0, minutes)

	// One second past the window start counts as one minute late.
	late, minutes = c.Classify(utcInstant("2024-01-10T06:00:01Z"), nil)
	assert.True(t, late)
	assert.Equal(t, 1, minutes)
}

func TestClassify_WholeMinutes(t *testing.T) {
	c := NewClassifier(time.UTC, "06:00:00")

	late, minutes := c.Classify(utcInstant("2024-01-10T06:05:00Z"), nil)
	assert.True(t, late)
	assert.Equal(t, 5, minutes)

	late, minutes = c.Classify(utcInstant("2024-01-10T07:30:00Z"), nil)
	assert.True(t, late)
	assert.Equal(t, 90, minutes)
}

func TestClassify_SiteWindowOverridesDefault(t *testing.T) {
	c := NewClassifier(time.UTC, "06:00:00")

	// Site opens at 08:00; a 07:00 arrival is early.
	late, minutes := c.Classify(utcInstant("2024-01-10T07:00:00Z"), timeOfDay("08:00:00"))
	assert.False(t, late)
	assert.Equal(t, 0, minutes)

	late, minutes = c.Classify(utcInstant("2024-01-10T08:10:00Z"), timeOfDay("08:00:00"))
	assert.True(t, late)
	assert.Equal(t, 10, minutes)
}

func TestClassify_LocalZoneOffset(t *testing.T) {
	c := NewClassifier(wat, "06:00:00")

	// 05:30 UTC is 06:30 WAT: 30 minutes late against a 06:00 local window.
	late, minutes := c.Classify(utcInstant("2024-01-10T05:30:00Z"), nil)
	assert.True(t, late)
	assert.Equal(t, 30, minutes)

	// 05:00 UTC is exactly 06:00 WAT.
	late, minutes = c.Classify(utcInstant("2024-01-10T05:00:00Z"), nil)
	assert.False(t, late)
	assert.Equal(t, 0, minutes)
}

func TestClassify_EarlyArrival(t *testing.T) {
	c := NewClassifier(time.UTC, "06:00:00")

	late, minutes := c.Classify(utcInstant("2024-01-10T04:45:00Z"), nil)
	assert.False(t, late)
	assert.Equal(t, 0, minutes)
}

func TestNewClassifier_BadDefaultFallsBack(t *testing.T) {
	c := NewClassifier(time.UTC, "not-a-time")

	assert.Equal(t, "06:00:00", c.WindowStart(nil).Format("15:04:05"))
}
