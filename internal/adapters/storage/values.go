package storage

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"
)

// TimeLayout is the text format for every timestamp column.
const TimeLayout = "2006-01-02T15:04:05.999999999Z07:00"

// DateLayout is the text format for calendar-date columns.
const DateLayout = "2006-01-02"

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a TimeLayout column, logging a warning with the column name on failure.
func ParseTime(raw, column string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(TimeLayout, raw)
	if err != nil {
		slog.Warn("time_parse_failed", "column", column, "raw", raw, "error", err)
	}
	return t
}

// ParseNullableTime parses a nullable TimeLayout column.
func ParseNullableTime(ns sql.NullString, column string) time.Time {
	if !ns.Valid {
		return time.Time{}
	}
	return ParseTime(ns.String, column)
}

// NullableTime stores the zero time as NULL.
func NullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return FormatTime(t)
}

// ParseDate parses a DateLayout column.
func ParseDate(raw, column string) time.Time {
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		slog.Warn("date_parse_failed", "column", column, "raw", raw, "error", err)
	}
	return t
}

// BoolToInt maps a bool onto SQLite's integer booleans.
func BoolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// EncodeList stores a string list as a JSON array; nil becomes "".
func EncodeList(list []string) string {
	if len(list) == 0 {
		return ""
	}
	b, _ := json.Marshal(list)
	return string(b)
}

// DecodeList reverses EncodeList.
func DecodeList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		slog.Warn("list_decode_failed", "raw", raw, "error", err)
		return nil
	}
	return list
}
