package models

import (
	"testing"
	"time"
)

func TestNextSunday(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		expected time.Time
	}{
		{
			name:     "already sunday",
			from:     time.Date(2024, 11, 17, 9, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 11, 17, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "monday rolls forward six days",
			from:     time.Date(2024, 11, 18, 9, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 11, 24, 9, 0, 0, 0, time.UTC),
		},
		{
			name:     "saturday rolls forward one day",
			from:     time.Date(2024, 11, 23, 9, 0, 0, 0, time.UTC),
			expected: time.Date(2024, 11, 24, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextSunday(tt.from)
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
			if got.Weekday() != time.Sunday {
				t.Errorf("Result %v is not a Sunday", got)
			}
		})
	}
}
