// Package converters maps snake_case database rows onto camelCase domain
// models. Rows carry sql.Null* fields and raw enum strings; conversion
// coerces NULL and malformed values to safe defaults rather than failing,
// so a damaged row degrades a single record instead of crashing a load.
package converters

import (
	"database/sql"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate parses a stored "YYYY-MM-DD" date, coercing NULL or malformed
// values to the zero time
func parseDate(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, ns.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// FormatDate renders a date for storage; the zero time stores as NULL
func FormatDate(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(dateLayout), Valid: true}
}

// parseTimestamp parses a stored RFC 3339 timestamp, tolerating the SQLite
// "YYYY-MM-DD HH:MM:SS" form; NULL or malformed values coerce to zero
func parseTimestamp(ns sql.NullString) time.Time {
	if !ns.Valid || ns.String == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, ns.String); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", ns.String); err == nil {
		return t
	}
	return time.Time{}
}

// FormatTimestamp renders a timestamp for storage; the zero time stores as NULL
func FormatTimestamp(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func nullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullTime(nt sql.NullTime) time.Time {
	if nt.Valid {
		return nt.Time
	}
	return time.Time{}
}

// nonNegative clamps NULL and negative numeric fields to 0
func nonNegative(nf sql.NullFloat64) float64 {
	if !nf.Valid || nf.Float64 < 0 {
		return 0
	}
	return nf.Float64
}
