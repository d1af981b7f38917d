package report

import (
	"github.com/chrisdamba/parcelperf/internal/models"
)

// Policy holds the service-class rules: which customers are subject to the
// pickup cutoff, and the cutoff hour itself. Built once from config and
// read-only afterwards.
type Policy struct {
	special    map[string]struct{}
	cutoffHour int
}

func NewPolicy(specialCustomers []string, cutoffHour int) Policy {
	special := make(map[string]struct{}, len(specialCustomers))
	for _, c := range specialCustomers {
		special[c] = struct{}{}
	}
	return Policy{special: special, cutoffHour: cutoffHour}
}

// IsSpecial reports whether the customer is subject to the cutoff rule.
// Membership is an exact string match.
func (p Policy) IsSpecial(customer string) bool {
	_, ok := p.special[customer]
	return ok
}

// AfterCutoff reports whether a known pickup time falls at or after the
// cutoff hour of its own wall-clock day.
func (p Policy) AfterCutoff(ts models.Timestamp) bool {
	return ts.Known && ts.Time.Hour() >= p.cutoffHour
}

// DayClasses is the partition of one calendar day's pickups. Every order with
// a known pickup lands in exactly one class.
type DayClasses struct {
	Regular        []models.Order
	SpecialSameDay []models.Order
	SpecialNextDay []models.Order
}

// SameDayEligible returns the union of the classes eligible for the pickup
// day's same-day bucket.
func (c DayClasses) SameDayEligible() []models.Order {
	eligible := make([]models.Order, 0, len(c.Regular)+len(c.SpecialSameDay))
	eligible = append(eligible, c.Regular...)
	eligible = append(eligible, c.SpecialSameDay...)
	return eligible
}

// Classify partitions orders picked up on a single calendar day. Regular
// customers stay same-day eligible regardless of pickup time; special
// customers split on the cutoff hour. Orders with unknown pickup are skipped,
// they cannot be assigned to any day.
func (p Policy) Classify(picked []models.Order) DayClasses {
	var classes DayClasses
	for _, o := range picked {
		if !o.PickedAt.Known {
			continue
		}
		switch {
		case !p.IsSpecial(o.Customer):
			classes.Regular = append(classes.Regular, o)
		case p.AfterCutoff(o.PickedAt):
			classes.SpecialNextDay = append(classes.SpecialNextDay, o)
		default:
			classes.SpecialSameDay = append(classes.SpecialSameDay, o)
		}
	}
	return classes
}
