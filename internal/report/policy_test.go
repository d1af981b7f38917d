package report

import (
	"testing"

	"github.com/chrisdamba/parcelperf/internal/models"
)

func ts(raw string) models.Timestamp {
	return models.ParseTimestamp(raw)
}

func TestPolicyClassify(t *testing.T) {
	policy := NewPolicy([]string{"TATA CLiQ", "Heads Up for Tails HUFT"}, 15)

	orders := []models.Order{
		{Customer: "Acme", PickedAt: ts("07-05-2024 16:30")},             // regular, after cutoff: still same-day
		{Customer: "Acme", PickedAt: ts("07-05-2024 09:00")},             // regular, before cutoff
		{Customer: "TATA CLiQ", PickedAt: ts("07-05-2024 14:59")},        // special, last minute before cutoff
		{Customer: "TATA CLiQ", PickedAt: ts("07-05-2024 15:00")},        // special, exactly at cutoff
		{Customer: "Heads Up for Tails HUFT", PickedAt: ts("07-05-2024 23:00")}, // special, late evening
		{Customer: "TATA CLiQ", PickedAt: models.Timestamp{}},            // unknown pickup, excluded
	}

	classes := policy.Classify(orders)

	if got := len(classes.Regular); got != 2 {
		t.Errorf("Regular = %d orders, want 2", got)
	}
	if got := len(classes.SpecialSameDay); got != 1 {
		t.Errorf("SpecialSameDay = %d orders, want 1", got)
	}
	if got := len(classes.SpecialNextDay); got != 2 {
		t.Errorf("SpecialNextDay = %d orders, want 2", got)
	}

	// The partition property: every known-pickup order lands in exactly one class.
	total := len(classes.Regular) + len(classes.SpecialSameDay) + len(classes.SpecialNextDay)
	if total != 5 {
		t.Errorf("partition covers %d orders, want 5 (unknown pickup excluded)", total)
	}
}

func TestPolicyClassifyCaseSensitive(t *testing.T) {
	policy := NewPolicy([]string{"TATA CLiQ"}, 15)

	// Membership is an exact string match; a case variant is a regular customer.
	classes := policy.Classify([]models.Order{
		{Customer: "tata cliq", PickedAt: ts("07-05-2024 16:00")},
	})
	if len(classes.Regular) != 1 || len(classes.SpecialNextDay) != 0 {
		t.Errorf("case variant classified as special: %+v", classes)
	}
}

func TestPolicyAlternateCutoff(t *testing.T) {
	// The cutoff hour is policy, not a constant; a 12:00 cutoff must move
	// afternoon pickups to next-day.
	policy := NewPolicy([]string{"TATA CLiQ"}, 12)

	classes := policy.Classify([]models.Order{
		{Customer: "TATA CLiQ", PickedAt: ts("07-05-2024 13:00")},
		{Customer: "TATA CLiQ", PickedAt: ts("07-05-2024 11:59")},
	})
	if len(classes.SpecialNextDay) != 1 || len(classes.SpecialSameDay) != 1 {
		t.Errorf("cutoff 12 split = %d next-day / %d same-day, want 1/1",
			len(classes.SpecialNextDay), len(classes.SpecialSameDay))
	}
}

func TestSameDayEligible(t *testing.T) {
	classes := DayClasses{
		Regular:        []models.Order{{Customer: "a"}, {Customer: "b"}},
		SpecialSameDay: []models.Order{{Customer: "c"}},
		SpecialNextDay: []models.Order{{Customer: "d"}},
	}
	eligible := classes.SameDayEligible()
	if len(eligible) != 3 {
		t.Fatalf("SameDayEligible = %d orders, want 3", len(eligible))
	}
	for _, o := range eligible {
		if o.Customer == "d" {
			t.Error("next-day order leaked into the same-day eligible set")
		}
	}
}
