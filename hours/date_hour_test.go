package hours

import (
	"testing"
	"time"
)

func TestDateHourString(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 5}
	expected := "2025-01-01 05"
	if s := dh.String(); s != expected {
		t.Errorf("String() expected %q, got %q", expected, s)
	}
}

func TestDateHourIsoString(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 15}
	expected := "2025-01-01T15:00:00Z"
	if s := dh.IsoString(); s != expected {
		t.Errorf("IsoString() expected %q, got %q", expected, s)
	}
}

func TestDateHourTime(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 15}
	expected := time.Date(2025, time.January, 1, 15, 0, 0, 0, time.UTC)
	if got := dh.Time(); !got.Equal(expected) {
		t.Errorf("Time() expected %v, got %v", expected, got)
	}
}

func TestDateHourAdd(t *testing.T) {
	tests := []struct {
		name     string
		input    DateHour
		addHours int
		expected DateHour
	}{
		{
			name:     "add within same day",
			input:    DateHour{Date: "2025-01-01", Hour: 10},
			addHours: 2,
			expected: DateHour{Date: "2025-01-01", Hour: 12},
		},
		{
			name:     "add crossing midnight",
			input:    DateHour{Date: "2025-01-01", Hour: 23},
			addHours: 2,
			expected: DateHour{Date: "2025-01-02", Hour: 1},
		},
		{
			name:     "add negative hours (subtract)",
			input:    DateHour{Date: "2025-01-01", Hour: 1},
			addHours: -2,
			expected: DateHour{Date: "2024-12-31", Hour: 23},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.Add(tt.addHours)
			if result != tt.expected {
				t.Errorf("Add(%d) expected %+v, got %+v", tt.addHours, tt.expected, result)
			}
		})
	}
}

func TestDateHourSub(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 0}
	expected := DateHour{Date: "2024-12-31", Hour: 23}
	if result := dh.Sub(1); result != expected {
		t.Errorf("Sub(1) expected %+v, got %+v", expected, result)
	}
}

func TestDateHourCompare(t *testing.T) {
	a := DateHour{Date: "2025-01-01", Hour: 10}
	b := DateHour{Date: "2025-01-01", Hour: 11}
	c := DateHour{Date: "2025-01-02", Hour: 0}

	if a.Compare(a) != 0 {
		t.Errorf("expected equal DateHours to compare as 0")
	}
	if a.Compare(b) != -1 || b.Compare(a) != 1 {
		t.Errorf("expected hour ordering within the same date")
	}
	if b.Compare(c) != -1 {
		t.Errorf("expected date ordering to win over hour ordering")
	}
}

func TestDateHourIsZero(t *testing.T) {
	var dh DateHour
	if !dh.IsZero() {
		t.Errorf("expected a zero value DateHour to be zero")
	}
	dh = DateHour{Date: "2025-01-01", Hour: 0}
	if dh.IsZero() {
		t.Errorf("expected a non-zero DateHour (non-empty Date) not to be zero")
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2025, time.January, 1, 15, 30, 0, 0, time.UTC)
	dh := FromTime(tm)
	expected := DateHour{Date: "2025-01-01", Hour: 15}
	if dh != expected {
		t.Errorf("FromTime() expected %+v, got %+v", expected, dh)
	}

	var zero time.Time
	if !FromTime(zero).IsZero() {
		t.Errorf("FromTime() with zero time expected a zero DateHour")
	}
}

func TestFromTimeConvertsToUtc(t *testing.T) {
	// 00:30 Prague standard time is 23:30 UTC the previous day.
	tm := time.Date(2025, time.January, 2, 0, 30, 0, 0, Prague())
	dh := FromTime(tm)
	expected := DateHour{Date: "2025-01-01", Hour: 23}
	if dh != expected {
		t.Errorf("FromTime() expected %+v, got %+v", expected, dh)
	}
}
