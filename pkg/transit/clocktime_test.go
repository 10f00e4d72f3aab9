package transit

import (
	"testing"
	"time"
)

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		input   string
		want    ClockTime
		wantErr bool
	}{
		{input: "05:30", want: ClockTime{Hour: 5, Minute: 30}},
		{input: "00:00", want: ClockTime{Hour: 0, Minute: 0}},
		{input: "23:59", want: ClockTime{Hour: 23, Minute: 59}},
		{input: "01:15:00", want: ClockTime{Hour: 1, Minute: 15}},
		{input: "24:00", wantErr: true},
		{input: "12:60", wantErr: true},
		{input: "notatime", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseClockTime(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClockTime(%q) expected an error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClockTime(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseClockTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClockTimeString(t *testing.T) {
	tests := []struct {
		clock ClockTime
		want  string
	}{
		{ClockTime{Hour: 8, Minute: 5}, "08:05"},
		{ClockTime{Hour: 14, Minute: 30}, "14:30"},
		{ClockTime{Hour: 0, Minute: 0}, "00:00"},
		{ClockTime{Hour: 0, Minute: 3}, "00:03"},
	}

	for _, tt := range tests {
		if got := tt.clock.String(); got != tt.want {
			t.Errorf("%v.String() = %q, want %q", tt.clock, got, tt.want)
		}
	}
}

// Formatting then re-parsing must be lossless for every minute of the day.
func TestClockTimeRoundTrip(t *testing.T) {
	for minute := 0; minute < minutesPerDay; minute++ {
		clock := ClockTime{Hour: minute / 60, Minute: minute % 60}

		parsed, err := ParseClockTime(clock.String())
		if err != nil {
			t.Fatalf("ParseClockTime(%q) unexpected error: %v", clock.String(), err)
		}
		if parsed != clock {
			t.Fatalf("round trip of %v gave %v", clock, parsed)
		}
	}
}

func TestClockTimeOf(t *testing.T) {
	date := time.Date(2025, 10, 6, 12, 58, 45, 0, time.UTC)

	if got := ClockTimeOf(date); got != (ClockTime{Hour: 12, Minute: 58}) {
		t.Errorf("ClockTimeOf = %v, want 12:58", got)
	}
}
