package exporter

import (
	"fmt"
)

// formatFloat formats a quantity for CSV output with exactly 2 decimal
// places, so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatVND formats a currency amount. Dong amounts are whole numbers in
// the source reports, so no decimal places.
func formatVND(f float64) string {
	return fmt.Sprintf("%.0f", f)
}

// formatInt formats an int64 value for CSV output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}
