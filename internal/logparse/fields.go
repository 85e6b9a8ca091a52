package logparse

import "encoding/json"

// parseJSONObject best-effort parses one payload into a generic map. Returns
// nil when the payload is not a JSON object.
func parseJSONObject(body string) map[string]interface{} {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return nil
	}
	return raw
}

// toNumber converts a decoded JSON value to float64.
func toNumber(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// numberField returns the numeric value under key, with ok reporting whether
// the key held a number.
func numberField(raw map[string]interface{}, key string) (float64, bool) {
	v, ok := raw[key]
	if !ok {
		return 0, false
	}
	return toNumber(v)
}

// numberOr returns the numeric value under key, or fallback when absent.
func numberOr(raw map[string]interface{}, key string, fallback float64) float64 {
	if v, ok := numberField(raw, key); ok {
		return v
	}
	return fallback
}

// stringField returns the string under key, or "".
func stringField(raw map[string]interface{}, key string) string {
	s, _ := raw[key].(string)
	return s
}

// objectField returns the nested object under key, or nil.
func objectField(raw map[string]interface{}, key string) map[string]interface{} {
	obj, _ := raw[key].(map[string]interface{})
	return obj
}

// nestedObject walks a path of object keys, returning nil when any hop is
// missing or not an object.
func nestedObject(raw map[string]interface{}, keys ...string) map[string]interface{} {
	current := raw
	for _, key := range keys {
		current = objectField(current, key)
		if current == nil {
			return nil
		}
	}
	return current
}

// appendNumber appends the field value to series when present. Absent fields
// leave the series untouched, so sequences across different metrics may end
// up with different lengths.
func appendNumber(series []float64, raw map[string]interface{}, key string) []float64 {
	if v, ok := numberField(raw, key); ok {
		return append(series, v)
	}
	return series
}
