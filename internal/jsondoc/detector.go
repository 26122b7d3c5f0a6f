package jsondoc

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// LooksLikeJSON checks if a string value looks like a JSON document
func LooksLikeJSON(value string) bool {
	value = strings.TrimSpace(value)
	if len(value) == 0 {
		return false
	}

	first := value[0]
	if first != '{' && first != '[' && first != '"' {
		// Could be null, true, false, or number
		if value == "null" || value == "true" || value == "false" {
			return true
		}
		var f float64
		return json.Unmarshal([]byte(value), &f) == nil
	}

	return json.Valid([]byte(value))
}

// KindOf classifies a value produced by a generic decoder (encoding/json,
// pgx row values). Unrecognised Go types classify as strings since FromAny
// renders them with their default format.
func KindOf(value interface{}) Kind {
	switch v := value.(type) {
	case nil:
		return KindNull
	case *Value:
		return Classify(v)
	case map[string]interface{}:
		return KindObject
	case []interface{}:
		return KindArray
	case string, []byte:
		return KindString
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return KindNumber
	case bool:
		return KindBool
	default:
		return KindString
	}
}

// FromAny converts a generically decoded value into a Value. Map keys carry
// no order, so they are sorted to keep the result deterministic.
func FromAny(value interface{}) *Value {
	switch v := value.(type) {
	case nil:
		return Null()
	case *Value:
		return v
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, 0, len(keys))
		for _, k := range keys {
			fields = append(fields, Field{Key: k, Value: FromAny(v[k])})
		}
		return Object(fields...)
	case []interface{}:
		items := make([]*Value, len(v))
		for i, item := range v {
			items[i] = FromAny(item)
		}
		return Array(items...)
	case string:
		return String(v)
	case []byte:
		return String(string(v))
	case bool:
		return Bool(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return String(v.String())
		}
		n := Number(f)
		n.raw = v.String()
		return n
	case float64:
		return Number(v)
	case float32:
		return Number(float64(v))
	case int:
		return Number(float64(v))
	case int8:
		return Number(float64(v))
	case int16:
		return Number(float64(v))
	case int32:
		return Number(float64(v))
	case int64:
		return Number(float64(v))
	case uint:
		return Number(float64(v))
	case uint8:
		return Number(float64(v))
	case uint16:
		return Number(float64(v))
	case uint32:
		return Number(float64(v))
	case uint64:
		return Number(float64(v))
	default:
		return String(fmt.Sprintf("%v", v))
	}
}
