package project

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// startOfDay truncates t to midnight in its own location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysActive returns the number of whole calendar days between the day of
// created and the day of now, in local time. Same day is 0.
func DaysActive(created, now time.Time) int {
	diff := startOfDay(now).Sub(startOfDay(created))
	return int(math.Round(diff.Hours() / 24))
}

// DaysActiveLabel renders DaysActive for display: "Today", "1 day", "N days".
func DaysActiveLabel(created, now time.Time) string {
	switch days := DaysActive(created, now); days {
	case 0:
		return "Today"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// RelativeDate renders a timestamp relative to now using calendar-day
// boundaries: "Today", "Yesterday", "N days ago" for 2-6 days, otherwise
// an absolute short date.
func RelativeDate(date, now time.Time) string {
	switch days := DaysActive(date, now); {
	case days == 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return date.Format("Jan 02, 2006")
	}
}

// TimeOfDay names the part of day for greeting purposes.
func TimeOfDay(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Morning"
	case hour < 17:
		return "Afternoon"
	default:
		return "Evening"
	}
}

// Formatter renders amounts with a locale-aware digit grouping and a
// currency symbol prefix. The default locale is en-IN, which groups digits
// in the Indian style (1,23,45,678).
type Formatter struct {
	symbol  string
	printer *message.Printer
}

// NewFormatter creates a Formatter for the given BCP 47 locale and symbol.
func NewFormatter(locale, symbol string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parsing locale %q: %w", locale, err)
	}
	return &Formatter{symbol: symbol, printer: message.NewPrinter(tag)}, nil
}

// DefaultFormatter returns the en-IN rupee formatter.
func DefaultFormatter() *Formatter {
	f, _ := NewFormatter("en-IN", "₹")
	return f
}

// Currency renders the full amount with digit grouping, e.g. "₹1,23,456".
func (f *Formatter) Currency(amount float64) string {
	return f.symbol + f.printer.Sprint(number.Decimal(amount))
}

// Abbreviated renders the amount using Indian large-number suffixes:
// Crore above 1e7, Lakh above 1e5, Thousand above 1e3, one decimal place.
func (f *Formatter) Abbreviated(amount float64) string {
	switch {
	case amount >= 1_00_00_000:
		return fmt.Sprintf("%s%.1fCr", f.symbol, amount/1_00_00_000)
	case amount >= 1_00_000:
		return fmt.Sprintf("%s%.1fL", f.symbol, amount/1_00_000)
	case amount >= 1000:
		return fmt.Sprintf("%s%.1fK", f.symbol, amount/1000)
	default:
		return fmt.Sprintf("%s%.0f", f.symbol, amount)
	}
}
