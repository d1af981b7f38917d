package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/chrisdamba/parcelperf/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func (r *OrderRepository) BulkCreate(ctx context.Context, orders []models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, order := range orders {
		query := `
            INSERT INTO orders (
                id, customer, hub, picked_at, first_attempted_at, delivered_at
            ) VALUES (
                $1, $2, $3, $4, $5, $6
            )
        `

		_, err = tx.Exec(ctx, query,
			order.ID,
			order.Customer,
			nullableText(order.Hub),
			nullableTime(order.PickedAt),
			nullableTime(order.FirstAttemptedAt),
			nullableTime(order.DeliveredAt),
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]models.Order, error) {
	query := `
        SELECT id, customer, hub, picked_at, first_attempted_at, delivered_at
        FROM orders
    `
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var (
			order     models.Order
			hub       *string
			picked    *time.Time
			attempted *time.Time
			delivered *time.Time
		)
		if err := rows.Scan(&order.ID, &order.Customer, &hub, &picked, &attempted, &delivered); err != nil {
			return nil, err
		}
		if hub != nil {
			order.Hub = *hub
		}
		order.PickedAt = fromNullableTime(picked)
		order.FirstAttemptedAt = fromNullableTime(attempted)
		order.DeliveredAt = fromNullableTime(delivered)
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}

func (r *OrderRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM orders`)
	return err
}

func nullableText(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullableTime(ts models.Timestamp) interface{} {
	if !ts.Known {
		return nil
	}
	return ts.Time
}

func fromNullableTime(t *time.Time) models.Timestamp {
	if t == nil {
		return models.Timestamp{}
	}
	return models.Timestamp{Time: *t, Known: true}
}
