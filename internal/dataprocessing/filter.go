package dataprocessing

import (
	"time"

	"fuelpos/pkg/contracts/domain"
)

// FilterByRange selects the records whose composed timestamp falls within
// [start, end], inclusive on both bounds. A nil bound on either side
// makes the filter a no-op and returns records unchanged. When a range is
// active, records without a composed timestamp are excluded: a record
// with unknown time can never be confirmed in range.
func FilterByRange(records []domain.Transaction, start, end *time.Time) []domain.Transaction {
	if start == nil || end == nil {
		return records
	}

	filtered := make([]domain.Transaction, 0, len(records))
	for _, tx := range records {
		ts := ComposeDateTime(tx)
		if ts == nil {
			continue
		}
		if ts.Before(*start) || ts.After(*end) {
			continue
		}
		filtered = append(filtered, tx)
	}
	return filtered
}
