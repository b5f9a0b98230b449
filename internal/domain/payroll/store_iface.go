package payroll

import "context"

// StoreAPI supplies the aggregation inputs. The calc layer never touches it;
// only the service does, so summaries can be rebuilt from any roster source.
type StoreAPI interface {
	ListEmployees(ctx context.Context, restaurantID string) ([]Employee, error)
	ListShifts(ctx context.Context, restaurantID string) ([]Shift, error)
}
