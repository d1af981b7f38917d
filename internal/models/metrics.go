package models

import "strconv"

// Report names, used as sink targets: file basenames, Kafka topic suffixes
// and parquet schema keys.
const (
	ReportSameDay         = "same_day"
	ReportNextDay         = "next_day"
	ReportHubSummary      = "hub_summary"
	ReportCustomerSummary = "customer_summary"
)

// DimensionAll is the dimension value reported when a series is not
// segmented by hub.
const DimensionAll = "all"

// MetricRow is one flat output row. Header and Record carry the CSV export
// contract; Values feeds the JSON, Kafka and console sinks.
type MetricRow interface {
	Report() string
	Header() []string
	Record() []string
	Values() map[string]interface{}
}

// SameDayRow is one calendar day of same-day service performance for one
// dimension value. Every day of the reporting window gets a row, zero-order
// days included.
type SameDayRow struct {
	Date         string  `json:"date" parquet:"name=date,type=BYTE_ARRAY,convertedtype=UTF8"`
	Dimension    string  `json:"dimension" parquet:"name=dimension,type=BYTE_ARRAY,convertedtype=UTF8"`
	Orders       int32   `json:"orders" parquet:"name=orders,type=INT32"`
	Attempted    int32   `json:"attempted" parquet:"name=attempted,type=INT32"`
	AttemptedPct float64 `json:"attempted_pct" parquet:"name=attempted_pct,type=DOUBLE"`
	Delivered    int32   `json:"delivered" parquet:"name=delivered,type=INT32"`
	DeliveredPct float64 `json:"delivered_pct" parquet:"name=delivered_pct,type=DOUBLE"`
}

func (r SameDayRow) Report() string { return ReportSameDay }

func (r SameDayRow) Header() []string {
	return []string{"date", "dimension", "orders", "attempted", "attempted_pct", "delivered", "delivered_pct"}
}

func (r SameDayRow) Record() []string {
	return []string{
		r.Date,
		r.Dimension,
		formatCount(r.Orders),
		formatCount(r.Attempted),
		formatPct(r.AttemptedPct),
		formatCount(r.Delivered),
		formatPct(r.DeliveredPct),
	}
}

func (r SameDayRow) Values() map[string]interface{} {
	return map[string]interface{}{
		"date":          r.Date,
		"dimension":     r.Dimension,
		"orders":        r.Orders,
		"attempted":     r.Attempted,
		"attempted_pct": r.AttemptedPct,
		"delivered":     r.Delivered,
		"delivered_pct": r.DeliveredPct,
	}
}

// NextDayRow is one calendar day of next-day service performance: orders a
// special customer handed over after the cutoff on the previous day, with the
// attempt/delivery credit split between pickup day and the day after. Days
// with no source orders are omitted from the series.
type NextDayRow struct {
	Date             string  `json:"date" parquet:"name=date,type=BYTE_ARRAY,convertedtype=UTF8"`
	Dimension        string  `json:"dimension" parquet:"name=dimension,type=BYTE_ARRAY,convertedtype=UTF8"`
	Orders           int32   `json:"orders" parquet:"name=orders,type=INT32"`
	Attempted        int32   `json:"attempted" parquet:"name=attempted,type=INT32"`
	AttemptedPct     float64 `json:"attempted_pct" parquet:"name=attempted_pct,type=DOUBLE"`
	Delivered        int32   `json:"delivered" parquet:"name=delivered,type=INT32"`
	DeliveredPct     float64 `json:"delivered_pct" parquet:"name=delivered_pct,type=DOUBLE"`
	AttemptedPrevDay int32   `json:"attempted_prev_day" parquet:"name=attempted_prev_day,type=INT32"`
	AttemptedCurDay  int32   `json:"attempted_cur_day" parquet:"name=attempted_cur_day,type=INT32"`
	DeliveredPrevDay int32   `json:"delivered_prev_day" parquet:"name=delivered_prev_day,type=INT32"`
	DeliveredCurDay  int32   `json:"delivered_cur_day" parquet:"name=delivered_cur_day,type=INT32"`
}

func (r NextDayRow) Report() string { return ReportNextDay }

func (r NextDayRow) Header() []string {
	return []string{
		"date", "dimension", "orders", "attempted", "attempted_pct", "delivered", "delivered_pct",
		"attempted_prev_day", "attempted_cur_day", "delivered_prev_day", "delivered_cur_day",
	}
}

func (r NextDayRow) Record() []string {
	return []string{
		r.Date,
		r.Dimension,
		formatCount(r.Orders),
		formatCount(r.Attempted),
		formatPct(r.AttemptedPct),
		formatCount(r.Delivered),
		formatPct(r.DeliveredPct),
		formatCount(r.AttemptedPrevDay),
		formatCount(r.AttemptedCurDay),
		formatCount(r.DeliveredPrevDay),
		formatCount(r.DeliveredCurDay),
	}
}

func (r NextDayRow) Values() map[string]interface{} {
	return map[string]interface{}{
		"date":               r.Date,
		"dimension":          r.Dimension,
		"orders":             r.Orders,
		"attempted":          r.Attempted,
		"attempted_pct":      r.AttemptedPct,
		"delivered":          r.Delivered,
		"delivered_pct":      r.DeliveredPct,
		"attempted_prev_day": r.AttemptedPrevDay,
		"attempted_cur_day":  r.AttemptedCurDay,
		"delivered_prev_day": r.DeliveredPrevDay,
		"delivered_cur_day":  r.DeliveredCurDay,
	}
}

// HubSummary aggregates one hub's same-day series across a reporting window:
// mean daily rates over days with data, orders summed over all days.
type HubSummary struct {
	Window          string  `json:"window" parquet:"name=window,type=BYTE_ARRAY,convertedtype=UTF8"`
	Hub             string  `json:"hub" parquet:"name=hub,type=BYTE_ARRAY,convertedtype=UTF8"`
	TotalOrders     int32   `json:"total_orders" parquet:"name=total_orders,type=INT32"`
	AvgAttemptedPct float64 `json:"avg_attempted_pct" parquet:"name=avg_attempted_pct,type=DOUBLE"`
	AvgDeliveredPct float64 `json:"avg_delivered_pct" parquet:"name=avg_delivered_pct,type=DOUBLE"`
}

func (r HubSummary) Report() string { return ReportHubSummary }

func (r HubSummary) Header() []string {
	return []string{"window", "hub", "total_orders", "avg_attempted_pct", "avg_delivered_pct"}
}

func (r HubSummary) Record() []string {
	return []string{
		r.Window,
		r.Hub,
		formatCount(r.TotalOrders),
		formatPct(r.AvgAttemptedPct),
		formatPct(r.AvgDeliveredPct),
	}
}

func (r HubSummary) Values() map[string]interface{} {
	return map[string]interface{}{
		"window":            r.Window,
		"hub":               r.Hub,
		"total_orders":      r.TotalOrders,
		"avg_attempted_pct": r.AvgAttemptedPct,
		"avg_delivered_pct": r.AvgDeliveredPct,
	}
}

// CustomerSummary is the literal same-calendar-day metric per customer: how
// many of the customer's orders were first attempted, and delivered, on their
// own pickup day. The special-customer cutoff rule does not apply here.
type CustomerSummary struct {
	Window           string  `json:"window" parquet:"name=window,type=BYTE_ARRAY,convertedtype=UTF8"`
	Customer         string  `json:"customer" parquet:"name=customer,type=BYTE_ARRAY,convertedtype=UTF8"`
	TotalOrders      int32   `json:"total_orders" parquet:"name=total_orders,type=INT32"`
	AttemptedSameDay int32   `json:"attempted_same_day" parquet:"name=attempted_same_day,type=INT32"`
	AttemptedPct     float64 `json:"attempted_pct" parquet:"name=attempted_pct,type=DOUBLE"`
	DeliveredSameDay int32   `json:"delivered_same_day" parquet:"name=delivered_same_day,type=INT32"`
	DeliveredPct     float64 `json:"delivered_pct" parquet:"name=delivered_pct,type=DOUBLE"`
}

func (r CustomerSummary) Report() string { return ReportCustomerSummary }

func (r CustomerSummary) Header() []string {
	return []string{"window", "customer", "total_orders", "attempted_same_day", "attempted_pct", "delivered_same_day", "delivered_pct"}
}

func (r CustomerSummary) Record() []string {
	return []string{
		r.Window,
		r.Customer,
		formatCount(r.TotalOrders),
		formatCount(r.AttemptedSameDay),
		formatPct(r.AttemptedPct),
		formatCount(r.DeliveredSameDay),
		formatPct(r.DeliveredPct),
	}
}

func (r CustomerSummary) Values() map[string]interface{} {
	return map[string]interface{}{
		"window":             r.Window,
		"customer":           r.Customer,
		"total_orders":       r.TotalOrders,
		"attempted_same_day": r.AttemptedSameDay,
		"attempted_pct":      r.AttemptedPct,
		"delivered_same_day": r.DeliveredSameDay,
		"delivered_pct":      r.DeliveredPct,
	}
}

func formatCount(v int32) string {
	return strconv.FormatInt(int64(v), 10)
}

// formatPct exports percentages at the storage precision of two decimals.
func formatPct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
