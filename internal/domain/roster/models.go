package roster

import "time"

type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type Employee struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	ContractType string    `json:"contractType"`
	HourlyRate   *float64  `json:"hourlyRate,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type EmployeeInput struct {
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	ContractType string   `json:"contractType"`
	HourlyRate   *float64 `json:"hourlyRate,omitempty"`
}
