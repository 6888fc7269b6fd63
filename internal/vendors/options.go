package vendors

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
)

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func floatOption(options map[string]interface{}, key string) (float64, bool) {
	switch v := options[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func intOption(options map[string]interface{}, key string) (int64, bool) {
	f, ok := floatOption(options, key)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// stringsOption accepts a single string or a list of strings.
func stringsOption(options map[string]interface{}, key string) ([]string, bool) {
	switch v := options[key].(type) {
	case string:
		return []string{v}, true
	case []string:
		return v, true
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
