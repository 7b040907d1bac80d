package dateutil

import (
	"testing"
	"time"
)

func TestDaysInclusive(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", Date(2026, 3, 10), Date(2026, 3, 10), 1},
		{"one week", Date(2026, 3, 1), Date(2026, 3, 7), 7},
		{"across month boundary", Date(2026, 1, 30), Date(2026, 2, 2), 4},
		{"across DST spring forward", Date(2026, 3, 28), Date(2026, 3, 30), 3},
		{"end before start", Date(2026, 3, 10), Date(2026, 3, 9), 0},
		{"full leap february", Date(2028, 2, 1), Date(2028, 2, 29), 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysInclusive(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysInclusive() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthBoundaries(t *testing.T) {
	d := Date(2026, 2, 17)
	if got := MonthStart(d); !got.Equal(Date(2026, 2, 1)) {
		t.Errorf("MonthStart = %v", got)
	}
	if got := MonthEnd(d); !got.Equal(Date(2026, 2, 28)) {
		t.Errorf("MonthEnd = %v", got)
	}
	if got := DaysInMonth(Date(2028, 2, 1)); got != 29 {
		t.Errorf("DaysInMonth leap = %d", got)
	}
	if got := NextMonth(Date(2026, 12, 31)); !got.Equal(Date(2027, 1, 1)) {
		t.Errorf("NextMonth year rollover = %v", got)
	}
}

func TestOverlapDays(t *testing.T) {
	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           int
	}{
		{"identical", Date(2026, 1, 1), Date(2026, 1, 10), Date(2026, 1, 1), Date(2026, 1, 10), 10},
		{"partial", Date(2026, 1, 1), Date(2026, 1, 10), Date(2026, 1, 8), Date(2026, 1, 20), 3},
		{"contained", Date(2026, 1, 1), Date(2026, 1, 31), Date(2026, 1, 10), Date(2026, 1, 12), 3},
		{"disjoint", Date(2026, 1, 1), Date(2026, 1, 5), Date(2026, 1, 6), Date(2026, 1, 9), 0},
		{"touching single day", Date(2026, 1, 1), Date(2026, 1, 5), Date(2026, 1, 5), Date(2026, 1, 9), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OverlapDays(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
				t.Errorf("OverlapDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeStripsTimeAndZone(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	in := time.Date(2026, 6, 15, 23, 45, 0, 0, loc)
	got := Normalize(in)
	if got.Hour() != 0 || got.Location() != time.UTC {
		t.Errorf("Normalize() = %v, want UTC midnight", got)
	}
	if got.Day() != 15 {
		t.Errorf("Normalize() moved the calendar day: %v", got)
	}
}

func TestMonthKey(t *testing.T) {
	if got := MonthKey(Date(2026, 9, 3)); got != "2026-09" {
		t.Errorf("MonthKey = %q", got)
	}
}
