// Package timefmt converts between decimal-hour quantities and the
// "HH:MM:SS" textual representation used by the time tracker and forms.
//
// Conversions are deterministic at one-second resolution: for any
// non-negative h, Decode(Encode(h)) reproduces h to within 1/3600.
package timefmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Encode renders decimal hours as "HH:MM:SS". Hours are zero-padded to at
// least two digits but grow unbounded ("123:00:00" for 123h). Negative
// input clamps to "00:00:00".
func Encode(hours float64) string {
	if hours <= 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return "00:00:00"
	}
	return EncodeSeconds(int(math.Round(hours * 3600)))
}

// EncodeSeconds renders a whole-second count as "HH:MM:SS".
// Used directly by the live timer display so elapsed wall-clock seconds
// never round-trip through float hours.
func EncodeSeconds(secs int) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Decode parses "H:M:S" into decimal hours. Missing or non-numeric
// components default to 0, and input without exactly three colon-separated
// fields decodes to 0 rather than failing. Callers must treat 0 as
// "unspecified"; the form layer rejects non-positive results before they
// reach any mutation.
func Decode(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0
	}

	h := parseComponent(parts[0])
	m := parseComponent(parts[1])
	sec := parseComponent(parts[2])

	return float64(h) + float64(m)/60 + float64(sec)/3600
}

// parseComponent parses a single time field, defaulting to 0 on bad input
func parseComponent(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
