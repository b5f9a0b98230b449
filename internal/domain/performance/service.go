package performance

import (
	"context"
	"errors"
	"time"
)

var ErrRangeInvalid = errors.New("from date must be on or before to date")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

type Dashboard struct {
	Granularity string   `json:"granularity"`
	Buckets     []Bucket `json:"buckets"`
	KPI         KPI      `json:"kpi"`
}

func (s *Service) BuildDashboard(ctx context.Context, restaurantID string, from, to time.Time, granularity string) (Dashboard, error) {
	if to.Before(from) {
		return Dashboard{}, ErrRangeInvalid
	}
	records, err := s.store.ListSales(ctx, restaurantID, from, to)
	if err != nil {
		return Dashboard{}, err
	}
	buckets, err := BucketSales(records, granularity)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{Granularity: granularity, Buckets: buckets, KPI: Summarize(records)}, nil
}

func (s *Service) RecordSales(ctx context.Context, restaurantID string, date time.Time, revenue float64, covers int) (string, error) {
	return s.store.UpsertSales(ctx, restaurantID, date, revenue, covers)
}
