package config

import (
	"math"
	"strconv"
	"strings"
	"time"
)

func section(m map[string]any, name string) (map[string]any, bool) {
	s, ok := m[name].(map[string]any)
	return s, ok
}

func applyString(m map[string]any, path, key string, dst *string) error {
	v, ok := m[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return fieldError(path, v, "must be a string")
	}
	*dst = s
	return nil
}

func applyInt(m map[string]any, path, key string, dst *int) error {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch n := v.(type) {
	case int:
		*dst = n
	case int64:
		*dst = int(n)
	case uint64:
		if n > math.MaxInt {
			return fieldError(path, v, "out of range")
		}
		*dst = int(n)
	case float64:
		if n != math.Trunc(n) {
			return fieldError(path, v, "must be a whole number")
		}
		*dst = int(n)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return fieldError(path, v, "must be an integer")
		}
		*dst = i
	default:
		return fieldError(path, v, "must be an integer")
	}
	return nil
}

// applyDuration accepts Go duration strings or whole seconds.
func applyDuration(m map[string]any, path, key string, dst *time.Duration) error {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch d := v.(type) {
	case time.Duration:
		*dst = d
	case string:
		parsed, err := time.ParseDuration(strings.TrimSpace(d))
		if err != nil {
			return fieldError(path, v, "must be a duration like 30s or 5m")
		}
		*dst = parsed
	default:
		var secs int
		if err := applyInt(m, path, key, &secs); err != nil {
			return fieldError(path, v, "must be a duration like 30s or 5m")
		}
		*dst = time.Duration(secs) * time.Second
	}
	return nil
}

// applyStrings accepts a list of strings or a comma-separated string.
func applyStrings(m map[string]any, path, key string, dst *[]string) error {
	v, ok := m[key]
	if !ok {
		return nil
	}
	switch list := v.(type) {
	case []string:
		*dst = append([]string(nil), list...)
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return fieldError(path, v, "must be a list of strings")
			}
			out = append(out, s)
		}
		*dst = out
	case string:
		*dst = SplitList(list)
	default:
		return fieldError(path, v, "must be a list of strings")
	}
	return nil
}

// SplitList splits a comma-separated list, dropping blank items.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
