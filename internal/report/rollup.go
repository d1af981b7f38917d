package report

import (
	"sort"
	"sync"

	"github.com/chrisdamba/parcelperf/internal/models"
)

// Rollup re-applies the attribution engine per segmentation key and derives
// the entity summary tables. It owns no state beyond the engine it composes.
type Rollup struct {
	engine *Engine
}

func NewRollup(engine *Engine) *Rollup {
	return &Rollup{engine: engine}
}

// HubSeries is one hub's daily series for one reporting window.
type HubSeries struct {
	Hub     string
	SameDay []models.SameDayRow
	NextDay []models.NextDayRow
}

// distinctHubs lists non-empty hub values in first-appearance order.
func distinctHubs(orders []models.Order) []string {
	seen := make(map[string]struct{})
	var hubs []string
	for _, o := range orders {
		if o.Hub == "" {
			continue
		}
		if _, ok := seen[o.Hub]; !ok {
			seen[o.Hub] = struct{}{}
			hubs = append(hubs, o.Hub)
		}
	}
	return hubs
}

// PerHub re-runs the engine once per distinct hub in the window's orders.
// Hubs share no mutable state and read immutable input, so the series are
// computed concurrently. Returns nil when the table resolved no hub column.
func (r *Rollup) PerHub(w Window, orders, adjacent []models.Order, hasHub bool) []HubSeries {
	if !hasHub {
		return nil
	}

	hubs := distinctHubs(orders)
	series := make([]HubSeries, len(hubs))

	var wg sync.WaitGroup
	for i, hub := range hubs {
		wg.Add(1)
		go func(i int, hub string) {
			defer wg.Done()
			dim := HubDimension(hub)
			series[i] = HubSeries{
				Hub:     hub,
				SameDay: r.engine.SameDaySeries(w, orders, dim),
				NextDay: r.engine.NextDaySeries(w, orders, adjacent, dim),
			}
		}(i, hub)
	}
	wg.Wait()

	return series
}

// HubSummaries collapses each hub's same-day series into one row: mean daily
// attempted/delivered rates over the days that had orders, total orders
// summed over the whole window.
func (r *Rollup) HubSummaries(w Window, series []HubSeries) []models.HubSummary {
	summaries := make([]models.HubSummary, 0, len(series))
	for _, hs := range series {
		var total int32
		var attSum, delSum float64
		var daysWithData int
		for _, row := range hs.SameDay {
			total += row.Orders
			if row.Orders == 0 {
				continue
			}
			attSum += row.AttemptedPct
			delSum += row.DeliveredPct
			daysWithData++
		}

		var avgAtt, avgDel float64
		if daysWithData > 0 {
			avgAtt = Round2(attSum / float64(daysWithData))
			avgDel = Round2(delSum / float64(daysWithData))
		}

		summaries = append(summaries, models.HubSummary{
			Window:          w.String(),
			Hub:             hs.Hub,
			TotalOrders:     total,
			AvgAttemptedPct: avgAtt,
			AvgDeliveredPct: avgDel,
		})
	}
	return summaries
}

// CustomerSummaries computes the literal same-calendar-day metric per
// customer: orders first attempted, and delivered, on their own pickup day.
// The cutoff rule deliberately does not apply here; customer identity is the
// only key. Customers appear in first-appearance order.
func (r *Rollup) CustomerSummaries(w Window, orders []models.Order) []models.CustomerSummary {
	index := make(map[string]int)
	var summaries []models.CustomerSummary

	for _, o := range orders {
		if !o.PickedAt.Known {
			continue
		}
		i, ok := index[o.Customer]
		if !ok {
			i = len(summaries)
			index[o.Customer] = i
			summaries = append(summaries, models.CustomerSummary{
				Window:   w.String(),
				Customer: o.Customer,
			})
		}

		summaries[i].TotalOrders++
		if o.FirstAttemptedAt.SameCalendarDay(o.PickedAt.Time) {
			summaries[i].AttemptedSameDay++
		}
		if o.DeliveredAt.SameCalendarDay(o.PickedAt.Time) {
			summaries[i].DeliveredSameDay++
		}
	}

	for i := range summaries {
		summaries[i].AttemptedPct = Round2(Percent(int(summaries[i].AttemptedSameDay), int(summaries[i].TotalOrders)))
		summaries[i].DeliveredPct = Round2(Percent(int(summaries[i].DeliveredSameDay), int(summaries[i].TotalOrders)))
	}
	return summaries
}

// TopHubs returns the n highest-volume hubs, ties kept in input order.
// n <= 0 returns everything.
func TopHubs(summaries []models.HubSummary, n int) []models.HubSummary {
	out := make([]models.HubSummary, len(summaries))
	copy(out, summaries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalOrders > out[j].TotalOrders })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// TopCustomers returns the n highest-volume customers, ties kept in input
// order. n <= 0 returns everything.
func TopCustomers(summaries []models.CustomerSummary, n int) []models.CustomerSummary {
	out := make([]models.CustomerSummary, len(summaries))
	copy(out, summaries)
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalOrders > out[j].TotalOrders })
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
