package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "seconds ago", t: now.Add(-30 * time.Second), want: "just now"},
		{name: "one minute", t: now.Add(-90 * time.Second), want: "1 minute ago"},
		{name: "minutes", t: now.Add(-45 * time.Minute), want: "45 minutes ago"},
		{name: "hours", t: now.Add(-5 * time.Hour), want: "5 hours ago"},
		{name: "days", t: now.AddDate(0, 0, -3), want: "3 days ago"},
		{name: "months", t: now.AddDate(0, -2, -5), want: "2 months ago"},
		{name: "years", t: now.AddDate(-2, -1, 0), want: "2 years ago"},
		{name: "future clamps", t: now.Add(time.Hour), want: "just now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelativeTime(tt.t, now))
		})
	}
}

func TestCompactCount(t *testing.T) {
	assert.Equal(t, "0", CompactCount(0))
	assert.Equal(t, "950", CompactCount(950))
	assert.Equal(t, "1.8k", CompactCount(1840))
	assert.Equal(t, "2k", CompactCount(2000))
	assert.Equal(t, "2.3M", CompactCount(2_300_000))
	assert.Equal(t, "1M", CompactCount(1_000_000))
}
