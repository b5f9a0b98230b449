package performance

import (
	"errors"
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketSalesByDay(t *testing.T) {
	records := []SalesRecord{
		{Date: day(2025, time.November, 3), Revenue: 1200, Covers: 80},
		{Date: day(2025, time.November, 4), Revenue: 900, Covers: 60},
	}
	buckets, err := BucketSales(records, GranularityDay)
	if err != nil {
		t.Fatalf("BucketSales error: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "2025-11-03" || buckets[1].Label != "2025-11-04" {
		t.Fatalf("bucket labels = %q, %q", buckets[0].Label, buckets[1].Label)
	}
	if buckets[0].Revenue != 1200 || buckets[0].Covers != 80 {
		t.Fatalf("first bucket = %+v", buckets[0])
	}
}

func TestBucketSalesByWeekStartsMonday(t *testing.T) {
	// 2025-11-03 (Mon) through 2025-11-09 (Sun) are one ISO week; the 10th
	// starts the next.
	records := []SalesRecord{
		{Date: day(2025, time.November, 3), Revenue: 100, Covers: 10},
		{Date: day(2025, time.November, 9), Revenue: 200, Covers: 20},
		{Date: day(2025, time.November, 10), Revenue: 400, Covers: 40},
	}
	buckets, err := BucketSales(records, GranularityWeek)
	if err != nil {
		t.Fatalf("BucketSales error: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 weekly buckets, got %d: %+v", len(buckets), buckets)
	}
	if !buckets[0].Start.Equal(day(2025, time.November, 3)) {
		t.Fatalf("first week starts %s, want 2025-11-03", buckets[0].Start.Format("2006-01-02"))
	}
	if buckets[0].Revenue != 300 || buckets[0].Covers != 30 {
		t.Fatalf("first week bucket = %+v", buckets[0])
	}
	if buckets[0].Label != "2025-W45" {
		t.Fatalf("first week label = %q", buckets[0].Label)
	}
}

func TestBucketSalesByMonth(t *testing.T) {
	records := []SalesRecord{
		{Date: day(2025, time.October, 31), Revenue: 500, Covers: 50},
		{Date: day(2025, time.November, 1), Revenue: 700, Covers: 70},
		{Date: day(2025, time.November, 30), Revenue: 300, Covers: 30},
	}
	buckets, err := BucketSales(records, GranularityMonth)
	if err != nil {
		t.Fatalf("BucketSales error: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("expected 2 monthly buckets, got %d", len(buckets))
	}
	if buckets[0].Label != "2025-10" || buckets[1].Label != "2025-11" {
		t.Fatalf("labels = %q, %q", buckets[0].Label, buckets[1].Label)
	}
	if buckets[1].Revenue != 1000 || buckets[1].Covers != 100 {
		t.Fatalf("november bucket = %+v", buckets[1])
	}
}

func TestBucketSalesRejectsUnknownGranularity(t *testing.T) {
	if _, err := BucketSales(nil, "hourly"); !errors.Is(err, ErrGranularityInvalid) {
		t.Fatalf("expected ErrGranularityInvalid, got %v", err)
	}
}

func TestBucketSalesIsDeterministic(t *testing.T) {
	records := []SalesRecord{
		{Date: day(2025, time.November, 12), Revenue: 10, Covers: 1},
		{Date: day(2025, time.November, 5), Revenue: 20, Covers: 2},
		{Date: day(2025, time.November, 19), Revenue: 30, Covers: 3},
	}
	first, err := BucketSales(records, GranularityWeek)
	if err != nil {
		t.Fatalf("BucketSales error: %v", err)
	}
	second, _ := BucketSales(records, GranularityWeek)
	if len(first) != len(second) {
		t.Fatalf("runs differ in length")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("runs diverge at %d: %+v vs %+v", i, first[i], second[i])
		}
		if i > 0 && !first[i-1].Start.Before(first[i].Start) {
			t.Fatalf("buckets out of chronological order: %+v", first)
		}
	}
}

func TestSummarize(t *testing.T) {
	records := []SalesRecord{
		{Date: day(2025, time.November, 3), Revenue: 1000, Covers: 40},
		{Date: day(2025, time.November, 4), Revenue: 500, Covers: 10},
	}
	kpi := Summarize(records)
	if kpi.TotalRevenue != 1500 || kpi.TotalCovers != 50 || kpi.DaysRecorded != 2 {
		t.Fatalf("kpi = %+v", kpi)
	}
	if kpi.AverageTicket != 30 {
		t.Fatalf("average ticket = %v, want 30", kpi.AverageTicket)
	}

	empty := Summarize(nil)
	if empty.AverageTicket != 0 {
		t.Fatalf("average ticket with no covers = %v, want 0", empty.AverageTicket)
	}
}
