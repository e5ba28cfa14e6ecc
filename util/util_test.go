package util

import (
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	testTime := time.Date(2025, 4, 5, 14, 30, 45, 0, time.UTC)

	// Test cases with different formats
	testCases := []struct {
		name           string
		format         string
		expectedResult string
	}{
		{"RFC3339", time.RFC3339, "2025-04-05T14:30:45Z"},
		{"Simple Date", "2006-01-02", "2025-04-05"},
		{"Time Only", "15:04:05", "14:30:45"},
		{"Date and Time", "2006-01-02 15:04:05", "2025-04-05 14:30:45"},
		{"Short Date", "Jan 2", "Apr 5"},
		{"Day of Week", "Monday", "Saturday"},
		{"Kitchen Time", time.Kitchen, "2:30PM"},
		{"Empty Format", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := formatTime(tc.format, testTime)

			if result != tc.expectedResult {
				t.Errorf("formatTime(%q, %v) = %q; want %q",
					tc.format, testTime, result, tc.expectedResult)
			}
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 4, 5, 14, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		t              time.Time
		expectedResult string
	}{
		{"Just now", now.Add(-30 * time.Minute), "Just now"},
		{"Hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"Days ago", now.Add(-49 * time.Hour), "2d ago"},
		{"Older than a week", now.Add(-10 * 24 * time.Hour), "Mar 26"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := RelativeTime(tc.t, now)

			if result != tc.expectedResult {
				t.Errorf("RelativeTime(%v) = %q; want %q", tc.t, result, tc.expectedResult)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	if NotBlank("   ") {
		t.Error("NotBlank should reject whitespace-only input")
	}
	if !NotBlank("pothole on Oak Street") {
		t.Error("NotBlank should accept non-empty input")
	}
}
