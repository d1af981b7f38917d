package models

import (
	"strings"
	"time"
)

// TimestampLayout is the wall-clock layout courier exports use for every
// lifecycle column: MM-DD-YYYY HH:MM.
const TimestampLayout = "01-02-2006 15:04"

// Timestamp is a parsed lifecycle timestamp. Known is false when the source
// cell was empty or did not match TimestampLayout; unknown values never enter
// date-bucketed counts.
type Timestamp struct {
	Time  time.Time
	Known bool
}

// ParseTimestamp parses one raw cell against TimestampLayout. Malformed input
// degrades to an unknown Timestamp instead of failing the row or the batch.
func ParseTimestamp(raw string) Timestamp {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Timestamp{}
	}
	t, err := time.Parse(TimestampLayout, raw)
	if err != nil {
		return Timestamp{}
	}
	return Timestamp{Time: t, Known: true}
}

// SameCalendarDay reports whether the timestamp is known and falls on the
// calendar day of d.
func (ts Timestamp) SameCalendarDay(d time.Time) bool {
	if !ts.Known {
		return false
	}
	y1, m1, d1 := ts.Time.Date()
	y2, m2, d2 := d.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Format renders the timestamp back in TimestampLayout, empty when unknown.
func (ts Timestamp) Format() string {
	if !ts.Known {
		return ""
	}
	return ts.Time.Format(TimestampLayout)
}

// Order is one row of the input table.
type Order struct {
	ID               string
	Customer         string
	Hub              string
	PickedAt         Timestamp
	FirstAttemptedAt Timestamp
	DeliveredAt      Timestamp
}

// Table is one loaded order table. HasHub records whether a hub column was
// resolved in the source; when false, hub rollups are skipped and every series
// runs under the single "all" dimension.
type Table struct {
	Orders []Order
	HasHub bool
}
