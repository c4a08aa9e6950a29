// Package aggregator rolls reservation records up into GRO performance
// summaries and dashboard statistics.
//
// Every function here is pure. Results are recomputed from the full record
// set on each call and nothing is cached, so callers may invoke them
// concurrently without coordination.
package aggregator

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"villa_backend/internal/models"
)

// CoercePrice returns the usable amount of a record price. Missing, NaN,
// infinite and negative values count as zero.
func CoercePrice(p *float64) float64 {
	if p == nil {
		return 0
	}
	v := *p
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func priceOf(r *models.ReservationRecord) decimal.Decimal {
	return decimal.NewFromFloat(CoercePrice(r.FinalPrice))
}

// SafeAverage divides total by count, returning zero when count is not positive.
func SafeAverage(total decimal.Decimal, count int) decimal.Decimal {
	if count <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}

// StartOfMonth truncates t to 00:00:00 on the first day of its month, in t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// groKey returns the grouping key of a record and whether it has one.
func groKey(r *models.ReservationRecord) (string, bool) {
	if r.Gro == nil {
		return "", false
	}
	g := strings.TrimSpace(*r.Gro)
	if g == "" {
		return "", false
	}
	return g, true
}

type groAccumulator struct {
	gro       string
	count     int
	revenue   decimal.Decimal
	completed int
	pending   int
	cancelled int
}

// SummarizeByGro groups records by GRO and returns one entry per GRO, ordered
// by total revenue descending. Records without a GRO are skipped. Entries with
// equal revenue keep the order in which their GRO first appeared.
func SummarizeByGro(records []models.ReservationRecord) []models.GroSummaryEntry {
	index := make(map[string]int)
	var groups []*groAccumulator

	for i := range records {
		rec := &records[i]
		key, ok := groKey(rec)
		if !ok {
			continue
		}

		pos, seen := index[key]
		if !seen {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, &groAccumulator{gro: key, revenue: decimal.Zero})
		}
		acc := groups[pos]

		acc.count++
		acc.revenue = acc.revenue.Add(priceOf(rec))
		switch rec.Status {
		case models.ReservationStatusSelesai:
			acc.completed++
		case models.ReservationStatusPending:
			acc.pending++
		case models.ReservationStatusBatal:
			acc.cancelled++
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].revenue.GreaterThan(groups[j].revenue)
	})

	entries := make([]models.GroSummaryEntry, 0, len(groups))
	for _, acc := range groups {
		entries = append(entries, models.GroSummaryEntry{
			Gro:                   acc.gro,
			TotalReservations:     acc.count,
			TotalRevenue:          acc.revenue.InexactFloat64(),
			AverageRevenue:        SafeAverage(acc.revenue, acc.count).InexactFloat64(),
			CompletedReservations: acc.completed,
			PendingReservations:   acc.pending,
			CancelledReservations: acc.cancelled,
		})
	}
	return entries
}

// ComputeDashboardStats computes global totals plus the totals of the month
// containing now. A record belongs to the month iff its createdAt is at or
// after the first instant of now's month; there is no upper bound.
func ComputeDashboardStats(records []models.ReservationRecord, now time.Time) models.DashboardStats {
	monthStart := StartOfMonth(now)

	var stats models.DashboardStats
	total := decimal.Zero
	monthly := decimal.Zero

	for i := range records {
		rec := &records[i]
		price := priceOf(rec)

		stats.TotalReservations++
		total = total.Add(price)

		switch rec.Status {
		case models.ReservationStatusPending:
			stats.PendingReservations++
		case models.ReservationStatusSelesai:
			stats.CompletedReservations++
		}

		if !rec.CreatedAt.Before(monthStart) {
			stats.MonthlyReservations++
			monthly = monthly.Add(price)
		}
	}

	stats.TotalRevenue = total.InexactFloat64()
	stats.MonthlyRevenue = monthly.InexactFloat64()
	return stats
}

// MonthlyRevenue buckets records created in the given year into twelve
// calendar months of loc. Months without records are present with zero values.
func MonthlyRevenue(records []models.ReservationRecord, year int, loc *time.Location) []models.MonthlyRevenuePoint {
	if loc == nil {
		loc = time.UTC
	}

	var counts [12]int
	var sums [12]decimal.Decimal
	for m := range sums {
		sums[m] = decimal.Zero
	}

	for i := range records {
		rec := &records[i]
		created := rec.CreatedAt.In(loc)
		if created.Year() != year {
			continue
		}
		m := int(created.Month()) - 1
		counts[m]++
		sums[m] = sums[m].Add(priceOf(rec))
	}

	points := make([]models.MonthlyRevenuePoint, 12)
	for m := 0; m < 12; m++ {
		points[m] = models.MonthlyRevenuePoint{
			Year:         year,
			Month:        m + 1,
			Reservations: counts[m],
			Revenue:      sums[m].InexactFloat64(),
		}
	}
	return points
}
