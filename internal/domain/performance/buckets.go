package performance

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

const (
	GranularityDay   = "day"
	GranularityWeek  = "week"
	GranularityMonth = "month"
)

var ErrGranularityInvalid = errors.New("granularity must be day, week or month")

// BucketSales groups daily sales records into chart series buckets. The result
// is fully determined by the inputs: buckets are keyed by calendar boundaries
// (weeks start on Monday) and returned in chronological order.
func BucketSales(records []SalesRecord, granularity string) ([]Bucket, error) {
	if granularity != GranularityDay && granularity != GranularityWeek && granularity != GranularityMonth {
		return nil, ErrGranularityInvalid
	}

	byStart := map[time.Time]*Bucket{}
	for _, record := range records {
		start, label := bucketKey(record.Date, granularity)
		bucket, ok := byStart[start]
		if !ok {
			bucket = &Bucket{Label: label, Start: start}
			byStart[start] = bucket
		}
		bucket.Revenue += record.Revenue
		bucket.Covers += record.Covers
	}

	out := make([]Bucket, 0, len(byStart))
	for _, bucket := range byStart {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func bucketKey(date time.Time, granularity string) (time.Time, string) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	switch granularity {
	case GranularityWeek:
		offset := int(day.Weekday())
		if offset == 0 {
			offset = 7
		}
		monday := day.AddDate(0, 0, 1-offset)
		year, week := monday.ISOWeek()
		return monday, fmt.Sprintf("%04d-W%02d", year, week)
	case GranularityMonth:
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first, first.Format("2006-01")
	default:
		return day, day.Format("2006-01-02")
	}
}

// Summarize folds records into dashboard KPIs.
func Summarize(records []SalesRecord) KPI {
	var kpi KPI
	for _, record := range records {
		kpi.TotalRevenue += record.Revenue
		kpi.TotalCovers += record.Covers
	}
	kpi.DaysRecorded = len(records)
	if kpi.TotalCovers > 0 {
		kpi.AverageTicket = kpi.TotalRevenue / float64(kpi.TotalCovers)
	}
	return kpi
}
