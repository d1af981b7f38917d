package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/chrisdamba/parcelperf/internal/models"
)

// DateLayout is the calendar-day form used in every output row.
const DateLayout = "2006-01-02"

// Window is one reporting window: a full calendar month. All daily series
// span the whole month regardless of which days carry data.
type Window struct {
	Year  int
	Month time.Month
}

// ParseWindow parses a YYYY-MM string.
func ParseWindow(s string) (Window, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Window{}, fmt.Errorf("invalid reporting window %q (want YYYY-MM): %w", s, err)
	}
	return Window{Year: t.Year(), Month: t.Month()}, nil
}

func (w Window) String() string {
	return fmt.Sprintf("%04d-%02d", w.Year, int(w.Month))
}

// Days returns every calendar day of the window, oldest first.
func (w Window) Days() []time.Time {
	days := make([]time.Time, 0, 31)
	d := time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, time.UTC)
	for d.Month() == w.Month {
		days = append(days, d)
		d = d.AddDate(0, 0, 1)
	}
	return days
}

// ContainsDay reports whether the calendar day of d falls inside the window.
func (w Window) ContainsDay(d time.Time) bool {
	return d.Year() == w.Year && d.Month() == w.Month
}

// Contains reports whether a known timestamp falls inside the window.
func (w Window) Contains(ts models.Timestamp) bool {
	return ts.Known && w.ContainsDay(ts.Time)
}

// WindowsPresent lists the distinct reporting windows with at least one known
// pickup, oldest first.
func WindowsPresent(orders []models.Order) []Window {
	seen := make(map[Window]struct{})
	var windows []Window
	for _, o := range orders {
		if !o.PickedAt.Known {
			continue
		}
		w := Window{Year: o.PickedAt.Time.Year(), Month: o.PickedAt.Time.Month()}
		if _, ok := seen[w]; !ok {
			seen[w] = struct{}{}
			windows = append(windows, w)
		}
	}
	sort.Slice(windows, func(i, j int) bool {
		if windows[i].Year != windows[j].Year {
			return windows[i].Year < windows[j].Year
		}
		return windows[i].Month < windows[j].Month
	})
	return windows
}

// SplitWindow partitions orders into those picked inside w and the rest.
// The rest is the adjacent source the next-day series consults when day 1's
// lookback crosses the month boundary.
func SplitWindow(orders []models.Order, w Window) (in, out []models.Order) {
	for _, o := range orders {
		if w.Contains(o.PickedAt) {
			in = append(in, o)
		} else {
			out = append(out, o)
		}
	}
	return in, out
}

// Dimension is an optional segmentation of a series. Value is reported in
// every row; a nil Match selects every order.
type Dimension struct {
	Value string
	Match func(models.Order) bool
}

// AllOrders is the un-segmented dimension.
func AllOrders() Dimension {
	return Dimension{Value: models.DimensionAll}
}

// HubDimension restricts a series to orders handled by one delivery hub.
func HubDimension(hub string) Dimension {
	return Dimension{
		Value: hub,
		Match: func(o models.Order) bool { return o.Hub == hub },
	}
}

// Engine computes the daily attribution series for one policy. It is
// stateless across calls; every series is recomputed from the orders it is
// handed.
type Engine struct {
	policy Policy
}

func NewEngine(policy Policy) *Engine {
	return &Engine{policy: policy}
}

func dayKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// groupByPickupDay buckets orders with known pickups by calendar day after
// applying the dimension filter. Unknown pickups drop out here and never
// reach any bucket.
func groupByPickupDay(orders []models.Order, dim Dimension) map[time.Time][]models.Order {
	byDay := make(map[time.Time][]models.Order)
	for _, o := range orders {
		if !o.PickedAt.Known {
			continue
		}
		if dim.Match != nil && !dim.Match(o) {
			continue
		}
		k := dayKey(o.PickedAt.Time)
		byDay[k] = append(byDay[k], o)
	}
	return byDay
}

// SameDaySeries produces one row per calendar day of the window: orders
// eligible for same-day service that day, and how many were first attempted
// and delivered on the day itself. Zero-order days are reported as zero rows.
func (e *Engine) SameDaySeries(w Window, orders []models.Order, dim Dimension) []models.SameDayRow {
	byDay := groupByPickupDay(orders, dim)

	days := w.Days()
	rows := make([]models.SameDayRow, 0, len(days))
	for _, day := range days {
		classes := e.policy.Classify(byDay[day])
		eligible := classes.SameDayEligible()

		var attempted, delivered int
		for _, o := range eligible {
			if o.FirstAttemptedAt.SameCalendarDay(day) {
				attempted++
			}
			if o.DeliveredAt.SameCalendarDay(day) {
				delivered++
			}
		}

		rows = append(rows, models.SameDayRow{
			Date:         day.Format(DateLayout),
			Dimension:    dim.Value,
			Orders:       int32(len(eligible)),
			Attempted:    int32(attempted),
			AttemptedPct: Round2(Percent(attempted, len(eligible))),
			Delivered:    int32(delivered),
			DeliveredPct: Round2(Percent(delivered, len(eligible))),
		})
	}
	return rows
}

// NextDaySeries produces the next-day rows of the window: for each day D, the
// special-customer orders picked after the cutoff on D-1, with attempts and
// deliveries credited on either day. When D-1 falls in the previous month the
// source set is drawn from adjacent, the read-only orders outside the window.
// Days whose source set is empty are omitted.
func (e *Engine) NextDaySeries(w Window, orders, adjacent []models.Order, dim Dimension) []models.NextDayRow {
	byDay := groupByPickupDay(orders, dim)
	adjByDay := groupByPickupDay(adjacent, dim)

	var rows []models.NextDayRow
	for _, day := range w.Days() {
		prev := day.AddDate(0, 0, -1)

		picked := byDay[prev]
		if !w.ContainsDay(prev) {
			picked = adjByDay[prev]
		}

		source := e.policy.Classify(picked).SpecialNextDay
		if len(source) == 0 {
			continue
		}

		var attPrev, attCur, delPrev, delCur int
		for _, o := range source {
			if o.FirstAttemptedAt.SameCalendarDay(prev) {
				attPrev++
			} else if o.FirstAttemptedAt.SameCalendarDay(day) {
				attCur++
			}
			if o.DeliveredAt.SameCalendarDay(prev) {
				delPrev++
			} else if o.DeliveredAt.SameCalendarDay(day) {
				delCur++
			}
		}
		totalAttempted := attPrev + attCur
		totalDelivered := delPrev + delCur

		rows = append(rows, models.NextDayRow{
			Date:             day.Format(DateLayout),
			Dimension:        dim.Value,
			Orders:           int32(len(source)),
			Attempted:        int32(totalAttempted),
			AttemptedPct:     Round2(Percent(totalAttempted, len(source))),
			Delivered:        int32(totalDelivered),
			DeliveredPct:     Round2(Percent(totalDelivered, len(source))),
			AttemptedPrevDay: int32(attPrev),
			AttemptedCurDay:  int32(attCur),
			DeliveredPrevDay: int32(delPrev),
			DeliveredCurDay:  int32(delCur),
		})
	}
	return rows
}
