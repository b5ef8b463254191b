package postgres

import (
	"database/sql"
	"errors"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// nullableString maps "" to NULL.
func nullableString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}

func nullStringValue(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return strings.TrimSpace(value.String)
}

// decodeStringMap reads a jsonb object whose values should be strings.
// Numbers and booleans are formatted; nested values and nulls are dropped.
// NULL or empty input yields an empty map.
func decodeStringMap(raw []byte) (map[string]string, error) {
	out := make(map[string]string)
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}

	var generic map[string]any
	if err := sonic.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	for key, value := range generic {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if text, ok := stringValue(value); ok && text != "" {
			out[key] = text
		}
	}
	return out, nil
}

func stringValue(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v), true
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), true
		}
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return "", false
	}
}
