package repository

import (
	"database/sql"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableStr converts an empty string to SQL NULL.
func nullableStr(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// joinList flattens a string slice into the comma-separated storage form.
func joinList(vals []string) string {
	return strings.Join(vals, ",")
}

// splitList parses the comma-separated storage form back into a slice.
// Empty storage yields nil.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
