package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/message"

	"github.com/lmarin/obra/internal/timefmt"
)

// FormatTime renders decimal hours according to the active time mode:
// "2.50h" in decimal mode, "02:30:00" in hms mode.
func (s *Service) FormatTime(hours float64) string {
	if s.Current().TimeFormat == ModeDecimal {
		return fmt.Sprintf("%.2fh", hours)
	}
	return timefmt.Encode(hours)
}

// FormatCurrency renders an amount with the configured currency code and
// the app locale. Negative amounts keep their sign (over-spent budgets
// render as a negative figure). An unknown code falls back to the default.
func (s *Service) FormatCurrency(amount float64) string {
	unit, err := currency.ParseISO(s.Current().Currency)
	if err != nil {
		unit, _ = currency.ParseISO(Default().Currency)
	}

	p := message.NewPrinter(s.locale)
	if amount < 0 {
		return "-" + p.Sprint(currency.Symbol(unit.Amount(-amount)))
	}
	return p.Sprint(currency.Symbol(unit.Amount(amount)))
}

// ParseTime parses user time input into decimal hours. Input containing a
// colon is treated as "HH:MM:SS"; anything else is read as a decimal hour
// quantity, tolerating a trailing unit ("2.5h"). Unparseable input yields 0.
func (s *Service) ParseTime(input string) float64 {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0
	}

	if strings.Contains(input, ":") {
		return timefmt.Decode(input)
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, input)

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
