// Package format renders numbers and dates the way the factory's paperwork
// expects them: Turkish digit grouping and day-first dates.
package format

import (
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const (
	// InputDateLayout is the wire format for dates (HTML date inputs).
	InputDateLayout = "2006-01-02"
	// DisplayDateLayout is the day-first layout used on receipts and backups.
	DisplayDateLayout = "02.01.2006"
)

var printer = message.NewPrinter(language.Turkish)

// Number formats a value with tr-TR grouping, appending the given unit.
// Malformed values render as "0" rather than failing.
func Number(v float64, unit string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0" + unit
	}
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2))) + unit
}

// Lira formats a monetary amount with the currency sign.
func Lira(v float64) string {
	return Number(v, " ₺")
}

// Date renders a timestamp in the display layout; zero times render empty.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayDateLayout)
}

// InputDate renders a timestamp in the wire layout; zero times render empty.
func InputDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(InputDateLayout)
}

// ParseInputDate parses a wire-format date string.
func ParseInputDate(s string) (time.Time, error) {
	return time.Parse(InputDateLayout, s)
}
