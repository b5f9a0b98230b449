package payroll

import "context"

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

// MonthSummaries rebuilds the payroll view for one restaurant and month.
// Nothing is cached or persisted; every call recomputes from the roster and
// the weekly schedule.
func (s *Service) MonthSummaries(ctx context.Context, restaurantID string, month Month, search, contractType string) ([]Summary, Totals, error) {
	employees, err := s.store.ListEmployees(ctx, restaurantID)
	if err != nil {
		return nil, Totals{}, err
	}
	shifts, err := s.store.ListShifts(ctx, restaurantID)
	if err != nil {
		return nil, Totals{}, err
	}

	summaries := BuildMonthSummaries(month.Year, month.Month, employees, shifts)
	filtered := Filter(summaries, search, contractType)
	return filtered, SumTotals(filtered), nil
}
