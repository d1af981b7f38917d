package models

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantKnown bool
		want      time.Time
	}{
		{
			name:      "valid timestamp",
			raw:       "07-05-2024 16:30",
			wantKnown: true,
			want:      time.Date(2024, time.July, 5, 16, 30, 0, 0, time.UTC),
		},
		{
			name:      "valid with surrounding whitespace",
			raw:       "  12-31-2024 23:59 ",
			wantKnown: true,
			want:      time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC),
		},
		{
			name: "empty cell",
			raw:  "",
		},
		{
			name: "garbage",
			raw:  "not-a-date",
		},
		{
			name: "wrong order of fields",
			raw:  "2024-07-05 16:30",
		},
		{
			name: "date without time",
			raw:  "07-05-2024",
		},
		{
			name: "month out of range",
			raw:  "13-05-2024 10:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTimestamp(tt.raw)
			if got.Known != tt.wantKnown {
				t.Fatalf("ParseTimestamp(%q).Known = %v, want %v", tt.raw, got.Known, tt.wantKnown)
			}
			if tt.wantKnown && !got.Time.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q).Time = %v, want %v", tt.raw, got.Time, tt.want)
			}
		})
	}
}

func TestTimestampSameCalendarDay(t *testing.T) {
	day := time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   Timestamp
		want bool
	}{
		{"same day morning", ParseTimestamp("07-05-2024 00:01"), true},
		{"same day last minute", ParseTimestamp("07-05-2024 23:59"), true},
		{"next day", ParseTimestamp("07-06-2024 00:00"), false},
		{"previous day", ParseTimestamp("07-04-2024 23:59"), false},
		{"same day-of-month other month", ParseTimestamp("08-05-2024 12:00"), false},
		{"unknown", Timestamp{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ts.SameCalendarDay(day); got != tt.want {
				t.Errorf("SameCalendarDay = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimestampFormatRoundTrip(t *testing.T) {
	raw := "07-31-2024 16:00"
	ts := ParseTimestamp(raw)
	if got := ts.Format(); got != raw {
		t.Errorf("Format() = %q, want %q", got, raw)
	}

	if got := (Timestamp{}).Format(); got != "" {
		t.Errorf("unknown Format() = %q, want empty", got)
	}
}
