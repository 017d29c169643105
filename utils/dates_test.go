package utils

import (
	"testing"
	"time"
)

func TestDaysSince(t *testing.T) {
	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		t    time.Time
		want int
	}{
		{"same instant", now, 0},
		{"future date", now.Add(time.Hour), 0},
		{"exactly ten days", now.AddDate(0, 0, -10), 10},
		{"partial day rounds up", now.Add(-10*24*time.Hour - time.Minute), 11},
		{"sixty days", time.Date(2024, time.January, 1, 12, 0, 0, 0, time.UTC), 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysSince(now, tt.t); got != tt.want {
				t.Fatalf("DaysSince = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInPeriod(t *testing.T) {
	d := time.Date(2024, time.February, 10, 8, 0, 0, 0, time.UTC)
	if !InPeriod(d, 2024, 0) {
		t.Error("whole-year check failed")
	}
	if !InPeriod(d, 2024, time.February) {
		t.Error("month check failed")
	}
	if InPeriod(d, 2024, time.March) {
		t.Error("wrong month accepted")
	}
	if InPeriod(d, 2023, 0) {
		t.Error("wrong year accepted")
	}
}
