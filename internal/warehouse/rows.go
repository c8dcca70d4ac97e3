package warehouse

import (
	"fmt"
	"strconv"
	"strings"
)

// Record is one normalized result row. Keys are stored upper-cased so callers
// never branch on the casing a driver or HTTP gateway happened to report.
type Record map[string]any

// Get looks up a value by case-insensitive column name.
func (r Record) Get(key string) (any, bool) {
	v, ok := r[strings.ToUpper(key)]
	return v, ok
}

// String returns the value as a string, or "" when absent or nil.
func (r Record) String(key string) string {
	v, ok := r.Get(key)
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// Int returns the value as an int64, or 0 when absent or unparseable. Numeric
// values arrive as int64, float64, or decimal strings depending on the driver.
func (r Record) Int(key string) int64 {
	v, ok := r.Get(key)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		if parsed, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64); err == nil {
			return parsed
		}
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return int64(parsed)
		}
	}
	return 0
}

// Bool returns the value as a bool. Warehouses report booleans as native
// bools or as "TRUE"/"Y"/"YES" strings.
func (r Record) Bool(key string) bool {
	v, ok := r.Get(key)
	if !ok || v == nil {
		return false
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToUpper(strings.TrimSpace(b)) {
		case "TRUE", "Y", "YES", "1":
			return true
		}
	}
	return false
}

// NormalizeRows converts either accepted wire shape into canonical records:
//
//   - a *Result (columns + array-of-arrays rows)
//   - a []map[string]any (array of objects, arbitrary key casing)
//
// Everything past this boundary works with Record and never branches on the
// original shape.
func NormalizeRows(v any) ([]Record, error) {
	switch rows := v.(type) {
	case *Result:
		if rows == nil {
			return nil, nil
		}
		out := make([]Record, 0, len(rows.Rows))
		for _, row := range rows.Rows {
			rec := make(Record, len(rows.Columns))
			for i, col := range rows.Columns {
				if i < len(row) {
					rec[strings.ToUpper(col)] = row[i]
				}
			}
			out = append(out, rec)
		}
		return out, nil
	case []map[string]any:
		out := make([]Record, 0, len(rows))
		for _, row := range rows {
			rec := make(Record, len(row))
			for k, val := range row {
				rec[strings.ToUpper(k)] = val
			}
			out = append(out, rec)
		}
		return out, nil
	case []Record:
		out := make([]Record, 0, len(rows))
		for _, row := range rows {
			rec := make(Record, len(row))
			for k, val := range row {
				rec[strings.ToUpper(k)] = val
			}
			out = append(out, rec)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported row shape %T", v)
	}
}
