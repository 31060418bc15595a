package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"fuelpos/pkg/contracts/domain"
)

// timeOfDayPattern matches H:mm, HH:mm and the optional :ss suffix.
var timeOfDayPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})(?::(\d{2}))?`)

// ComposeDateTime reconstructs the full timestamp of a transaction by
// overlaying the Gio time-of-day string onto the Ngay calendar date.
// This is the sole authority for "when did this transaction occur":
// filtering and statistics must route through it rather than comparing
// Ngay directly, since Ngay alone discards time-of-day.
//
// Returns nil when Ngay is nil; returns Ngay unchanged when Gio is
// absent or does not look like a time.
func ComposeDateTime(tx domain.Transaction) *time.Time {
	if tx.Ngay == nil {
		return nil
	}
	base := *tx.Ngay

	m := timeOfDayPattern.FindStringSubmatch(strings.TrimSpace(tx.Gio))
	if m == nil {
		return &base
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds := 0
	if m[3] != "" {
		seconds, _ = strconv.Atoi(m[3])
	}
	if hours > 23 || minutes > 59 || seconds > 59 {
		return &base
	}

	t := time.Date(base.Year(), base.Month(), base.Day(), hours, minutes, seconds, 0, base.Location())
	return &t
}
