package performance

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListSales(ctx context.Context, restaurantID string, from, to time.Time) ([]SalesRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, restaurant_id, sales_date, revenue, covers
    FROM sales_records
    WHERE restaurant_id = $1 AND sales_date >= $2 AND sales_date <= $3
    ORDER BY sales_date
  `, restaurantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []SalesRecord
	for rows.Next() {
		var record SalesRecord
		if err := rows.Scan(&record.ID, &record.RestaurantID, &record.Date, &record.Revenue, &record.Covers); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Store) UpsertSales(ctx context.Context, restaurantID string, date time.Time, revenue float64, covers int) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO sales_records (restaurant_id, sales_date, revenue, covers)
    VALUES ($1,$2,$3,$4)
    ON CONFLICT (restaurant_id, sales_date)
    DO UPDATE SET revenue = EXCLUDED.revenue, covers = EXCLUDED.covers
    RETURNING id
  `, restaurantID, date, revenue, covers).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
