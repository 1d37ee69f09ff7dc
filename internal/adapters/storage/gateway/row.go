package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is how calendar dates are stored.
const DateLayout = "2006-01-02"

// Row is one table row keyed by column name.
// Values are whatever the backend decoded: string, int64, float64, json.Number, bool, []any or nil.
type Row map[string]any

// String returns the column as text; nil becomes "".
func (r Row) String(col string) string {
	switch v := r[col].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns the column as an integer; nil or unparseable values become 0.
func (r Row) Int64(col string) int64 {
	switch v := r[col].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return int64(f)
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// Int is Int64 narrowed to int.
func (r Row) Int(col string) int {
	return int(r.Int64(col))
}

// Date parses a YYYY-MM-DD column (a full timestamp is truncated to its date).
func (r Row) Date(col string) time.Time {
	s := r.String(col)
	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Time parses an RFC 3339 timestamp column.
func (r Row) Time(col string) time.Time {
	s := r.String(col)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Strings returns a list column. Backends hand JSON arrays back as []any; a JSON-encoded
// string is also accepted.
func (r Row) Strings(col string) []string {
	switch v := r[col].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, fmt.Sprint(item))
		}
		return out
	case string:
		var out []string
		if err := json.Unmarshal([]byte(v), &out); err == nil {
			return out
		}
	}
	return nil
}

// FormatDate renders a date column value; the zero time becomes nil (NULL).
func FormatDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Format(DateLayout)
}

// FormatTime renders a timestamp column value; the zero time becomes nil (NULL).
func FormatTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}
