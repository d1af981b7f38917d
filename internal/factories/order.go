package factories

import (
	"math/rand"
	"time"

	"github.com/chrisdamba/parcelperf/internal/models"
	"github.com/jaswdr/faker"
	"github.com/lucsky/cuid"
)

var fake = faker.New()

// OrderFactory fabricates delivery order rows for demos and load tests. It
// draws from a fixed pool of fake regular customers plus the configured
// special customers, so generated data exercises both service classes.
type OrderFactory struct {
	rng       *rand.Rand
	customers []string
	special   []string
	hubs      []string
}

func NewOrderFactory(seed int64, specialCustomers []string) *OrderFactory {
	customers := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		customers = append(customers, fake.Company().Name())
	}
	hubs := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		hubs = append(hubs, fake.Address().City())
	}
	return &OrderFactory{
		rng:       rand.New(rand.NewSource(seed)),
		customers: customers,
		special:   specialCustomers,
		hubs:      hubs,
	}
}

// CreateOrder fabricates one order picked up in the calendar month of base.
// About a quarter of orders go to special customers, pickup hours straddle
// the afternoon cutoff, and a small share of lifecycle timestamps is left
// unknown the way real exports have gaps.
func (f *OrderFactory) CreateOrder(base time.Time) models.Order {
	customer := f.customers[f.rng.Intn(len(f.customers))]
	if len(f.special) > 0 && f.rng.Float64() < 0.25 {
		customer = f.special[f.rng.Intn(len(f.special))]
	}

	order := models.Order{
		ID:       cuid.New(),
		Customer: customer,
		Hub:      f.hubs[f.rng.Intn(len(f.hubs))],
	}

	if f.rng.Float64() < 0.01 {
		// Unknown pickup; the row will be excluded from every daily bucket.
		return order
	}

	year, month, _ := base.Date()
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	picked := time.Date(
		year, month,
		1+f.rng.Intn(daysInMonth),
		8+f.rng.Intn(13), // 08:00 through 20:00, both sides of the cutoff
		f.rng.Intn(60),
		0, 0, time.UTC,
	)
	order.PickedAt = models.Timestamp{Time: picked, Known: true}

	if f.rng.Float64() < 0.94 {
		attempted := picked.Add(time.Duration(2+f.rng.Intn(28)) * time.Hour)
		order.FirstAttemptedAt = models.Timestamp{Time: attempted, Known: true}

		if f.rng.Float64() < 0.95 {
			delivered := attempted.Add(time.Duration(f.rng.Intn(8)) * time.Hour)
			order.DeliveredAt = models.Timestamp{Time: delivered, Known: true}
		}
	}

	return order
}

// CreateOrders fabricates n orders spread over the month of base.
func (f *OrderFactory) CreateOrders(n int, base time.Time) []models.Order {
	orders := make([]models.Order, n)
	for i := range orders {
		orders[i] = f.CreateOrder(base)
	}
	return orders
}
