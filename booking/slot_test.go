package booking

import (
	"testing"
	"time"

	"github.com/medibook/medibook-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:00", 540, false},
		{"09:15", 555, false},
		{"23:59", 1439, false},
		{"9am", 0, true},
		{"24:00", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestOverlaps(t *testing.T) {
	// [540,570) is 09:00-09:30
	assert.True(t, Overlaps(540, 570, 555, 585), "partial overlap")
	assert.True(t, Overlaps(540, 570, 540, 570), "identical")
	assert.True(t, Overlaps(540, 570, 500, 600), "containment")
	assert.False(t, Overlaps(540, 570, 570, 600), "adjacent intervals do not overlap")
	assert.False(t, Overlaps(540, 570, 600, 630), "disjoint")
}

func window(day time.Weekday, start, end string) models.Availability {
	return models.Availability{DayOfWeek: day, StartTime: start, EndTime: end, IsActive: true}
}

func TestSlotWithinWindows(t *testing.T) {
	windows := []models.Availability{
		window(time.Monday, "09:00", "12:00"),
		window(time.Wednesday, "14:00", "18:00"),
	}

	assert.True(t, SlotWithinWindows(windows, time.Monday, 540, 30), "09:00+30m inside window")
	assert.True(t, SlotWithinWindows(windows, time.Monday, 690, 30), "11:30+30m ends exactly at close")
	assert.False(t, SlotWithinWindows(windows, time.Monday, 700, 30), "runs past window end")
	assert.False(t, SlotWithinWindows(windows, time.Monday, 520, 30), "starts before window")
	assert.False(t, SlotWithinWindows(windows, time.Tuesday, 540, 30), "no window that day")
	assert.False(t, SlotWithinWindows(nil, time.Monday, 540, 30), "no windows at all")

	inactive := []models.Availability{
		{DayOfWeek: time.Monday, StartTime: "09:00", EndTime: "12:00", IsActive: false},
	}
	assert.False(t, SlotWithinWindows(inactive, time.Monday, 540, 30), "inactive window is ignored")
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 9, 7, 15, 42, 7, 123, time.Local)
	got := DateOnly(in)
	assert.Equal(t, time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, got, DateOnly(got))
}
