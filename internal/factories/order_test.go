package factories

import (
	"testing"
	"time"

	"github.com/chrisdamba/parcelperf/internal/models"
)

func TestCreateOrdersShape(t *testing.T) {
	special := models.DefaultSpecialCustomers
	factory := NewOrderFactory(1, special)
	base := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	orders := factory.CreateOrders(500, base)
	if len(orders) != 500 {
		t.Fatalf("generated %d orders, want 500", len(orders))
	}

	specialSet := make(map[string]struct{}, len(special))
	for _, c := range special {
		specialSet[c] = struct{}{}
	}

	var specialCount, unknownPickup int
	for _, o := range orders {
		if o.ID == "" || o.Customer == "" || o.Hub == "" {
			t.Fatalf("order missing identity fields: %+v", o)
		}
		if _, ok := specialSet[o.Customer]; ok {
			specialCount++
		}

		if !o.PickedAt.Known {
			unknownPickup++
			if o.FirstAttemptedAt.Known || o.DeliveredAt.Known {
				t.Errorf("order with unknown pickup has later lifecycle timestamps: %+v", o)
			}
			continue
		}
		if o.PickedAt.Time.Year() != 2024 || o.PickedAt.Time.Month() != time.July {
			t.Errorf("pickup outside base month: %v", o.PickedAt.Time)
		}
		if o.FirstAttemptedAt.Known && !o.FirstAttemptedAt.Time.After(o.PickedAt.Time) {
			t.Errorf("attempt not after pickup: %+v", o)
		}
		if o.DeliveredAt.Known && o.DeliveredAt.Time.Before(o.FirstAttemptedAt.Time) {
			t.Errorf("delivery before attempt: %+v", o)
		}
	}

	// The generator must exercise both service classes and leave some gaps.
	if specialCount == 0 {
		t.Error("no special-customer orders generated")
	}
	if specialCount == len(orders) {
		t.Error("no regular orders generated")
	}
	if unknownPickup == len(orders) {
		t.Error("every pickup unknown")
	}
}

func TestCreateOrderStraddlesCutoff(t *testing.T) {
	factory := NewOrderFactory(2, models.DefaultSpecialCustomers)
	base := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)

	var before, after int
	for _, o := range factory.CreateOrders(300, base) {
		if !o.PickedAt.Known {
			continue
		}
		if o.PickedAt.Time.Hour() < models.DefaultCutoffHour {
			before++
		} else {
			after++
		}
	}
	if before == 0 || after == 0 {
		t.Errorf("pickups do not straddle the cutoff: %d before, %d after", before, after)
	}
}
