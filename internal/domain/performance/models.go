package performance

import "time"

type SalesRecord struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	Date         time.Time `json:"date"`
	Revenue      float64   `json:"revenue"`
	Covers       int       `json:"covers"`
}

type SalesInput struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Covers  int     `json:"covers"`
}

type Bucket struct {
	Label   string    `json:"label"`
	Start   time.Time `json:"start"`
	Revenue float64   `json:"revenue"`
	Covers  int       `json:"covers"`
}

type KPI struct {
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalCovers   int     `json:"totalCovers"`
	AverageTicket float64 `json:"averageTicket"`
	DaysRecorded  int     `json:"daysRecorded"`
}
