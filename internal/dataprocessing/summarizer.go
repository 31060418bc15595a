package dataprocessing

import (
	"strings"
	"time"

	"fuelpos/pkg/contracts/domain"
)

// Summarize computes the aggregate statistics for a record set. An empty
// input yields zero counts and a nil time range. The time range covers
// only records with a valid composed timestamp.
func Summarize(records []domain.Transaction) domain.TransactionStats {
	var stats domain.TransactionStats
	if len(records) == 0 {
		return stats
	}

	stats.TotalTransactions = len(records)
	stations := make(map[string]struct{})
	products := make(map[string]struct{})
	var earliest, latest *time.Time

	for _, tx := range records {
		stats.TotalAmount += tx.ThanhTien
		stats.TotalQuantity += tx.SoLuong

		if s := strings.TrimSpace(tx.Tram); s != "" {
			stations[s] = struct{}{}
		}
		if p := strings.TrimSpace(tx.MatHang); p != "" {
			products[p] = struct{}{}
		}

		if ts := ComposeDateTime(tx); ts != nil {
			if earliest == nil || ts.Before(*earliest) {
				earliest = ts
			}
			if latest == nil || ts.After(*latest) {
				latest = ts
			}
		}
	}

	stats.AverageAmount = stats.TotalAmount / float64(len(records))
	stats.AverageQuantity = stats.TotalQuantity / float64(len(records))
	stats.UniqueStations = len(stations)
	stats.UniqueProducts = len(products)
	if earliest != nil {
		stats.TimeRange = &domain.TimeRange{Earliest: *earliest, Latest: *latest}
	}
	return stats
}

// GroupByPeriod buckets records by their composed timestamp truncated to
// the given period and computes a full statistics summary per bucket.
// Records without a composed timestamp fall into no bucket.
func GroupByPeriod(records []domain.Transaction, period domain.Period) map[string]*domain.PeriodBucket {
	buckets := make(map[string]*domain.PeriodBucket)

	for _, tx := range records {
		ts := ComposeDateTime(tx)
		if ts == nil {
			continue
		}
		key := periodKey(*ts, period)
		b := buckets[key]
		if b == nil {
			b = &domain.PeriodBucket{}
			buckets[key] = b
		}
		b.Transactions = append(b.Transactions, tx)
	}

	for _, b := range buckets {
		b.Statistics = Summarize(b.Transactions)
	}
	return buckets
}

func periodKey(t time.Time, period domain.Period) string {
	switch period {
	case domain.PeriodHour:
		return t.Format("2006-01-02 15:00")
	case domain.PeriodWeek:
		return startOfISOWeek(t).Format("2006-01-02")
	case domain.PeriodMonth:
		return t.Format("2006-01")
	default:
		return t.Format("2006-01-02")
	}
}

// startOfISOWeek truncates to the Monday beginning the timestamp's week.
func startOfISOWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// HourlyDistribution tallies record count and total amount per hour of
// day across 24 fixed slots, for chart rendering.
func HourlyDistribution(records []domain.Transaction) []domain.HourlySlot {
	slots := make([]domain.HourlySlot, 24)
	for i := range slots {
		slots[i].Hour = i
	}

	for _, tx := range records {
		ts := ComposeDateTime(tx)
		if ts == nil {
			continue
		}
		slot := &slots[ts.Hour()]
		slot.Count++
		slot.TotalAmount += tx.ThanhTien
	}
	return slots
}
