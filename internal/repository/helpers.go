package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// dateLayout stores day-granularity dates; timestamps use RFC3339.
const dateLayout = "2006-01-02"

// parseDate parses a stored day-granularity date.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing stored date %q: %w", s, err)
	}
	return t, nil
}

// nullableDateToValue converts a possibly-zero time to a value suitable for
// storage. The zero time maps to SQL NULL (an unset schedule end).
func nullableDateToValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(dateLayout)
}

// parseNullableDate converts a stored nullable date back; NULL and
// unparseable values yield the zero time.
func parseNullableDate(s sql.NullString) time.Time {
	if !s.Valid || s.String == "" {
		return time.Time{}
	}
	t, err := time.Parse(dateLayout, s.String)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullableStrToValue converts a *string to a storage value (nil maps to NULL).
func nullableStrToValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// nullableStr converts a scanned sql.NullString back to a *string.
func nullableStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
