package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

// dateLayouts is the ordered list of accepted string date layouts. Order
// matters: dd/MM/yyyy must win over MM/dd/yyyy for ambiguous values like
// "01/05/2024" because the source exports are Vietnamese. Each bare
// layout is also accepted with a trailing time-of-day.
var dateLayouts = []string{
	"02/01/2006",
	"01/02/2006",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"02-01-2006 15:04:05",
	"02-01-2006 15:04",
}

// currencyRunes are stripped from numeric strings before parsing: the
// đồng sign plus the letters of the VND / VNĐ currency code spellings.
const currencyRunes = "₫VNĐvnđ"

// cashPhrase matches the literal "cash" payment annotation that some
// exports append to amount cells.
var cashPhrase = regexp.MustCompile(`(?i)tiền mặt`)

// CoerceDate converts a raw cell value to a timestamp. Numeric values are
// treated as spreadsheet date serials; strings are tried against the
// fixed layout list and finally handed to an unconstrained natural parse.
// Total failure yields nil, never an error: callers treat nil as "date
// unknown", not a fatal condition.
func CoerceDate(value any) *time.Time {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		t := *v
		return &t
	case float64:
		if v == 0 {
			return nil
		}
		return serialToTime(v)
	case int:
		if v == 0 {
			return nil
		}
		return serialToTime(float64(v))
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, trimmed); err == nil {
				return &t
			}
		}
		if t, err := dateparse.ParseAny(trimmed); err == nil {
			return &t
		}
	}
	return nil
}

// serialToTime converts a spreadsheet date serial (days since the 1900
// epoch) to a timestamp, falling back to the linear serial-to-Unix
// formula when the library conversion rejects the value.
func serialToTime(serial float64) *time.Time {
	if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
		return &t
	}
	t := time.Unix(int64((serial-25569)*86400), 0).UTC()
	return &t
}

// CoerceNumber converts a raw cell value to a float64. Numeric input
// passes through unchanged. Strings are cleaned of currency markers, the
// "Tiền mặt" annotation, whitespace, and both comma and dot characters.
// The source files use both inconsistently as thousands separators, so
// both are discarded rather than interpreted. Failure yields 0, never an
// error.
func CoerceNumber(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		cleaned := cashPhrase.ReplaceAllString(v, "")
		cleaned = strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) || r == ',' || r == '.' || strings.ContainsRune(currencyRunes, r) {
				return -1
			}
			return r
		}, cleaned)
		f, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return f
	}
	return 0
}
