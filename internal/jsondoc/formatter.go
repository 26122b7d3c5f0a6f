package jsondoc

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Format formats a value as a pretty-printed JSON string, two-space indented,
// members in document order
func Format(v *Value) string {
	var buf bytes.Buffer
	writeValue(&buf, v, "  ", 0)
	return buf.String()
}

// Compact formats a value as compact (single-line) JSON
func Compact(v *Value) string {
	var buf bytes.Buffer
	writeValue(&buf, v, "", 0)
	return buf.String()
}

func writeValue(buf *bytes.Buffer, v *Value, indent string, depth int) {
	newline := func(d int) {
		if indent == "" {
			return
		}
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(indent, d))
	}

	switch Classify(v) {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		buf.WriteString(ScalarString(v))
	case KindNumber:
		if v.raw != "" {
			buf.WriteString(v.raw)
		} else {
			buf.WriteString(formatNumber(v.n))
		}
	case KindString:
		buf.WriteString(quote(v.s))
	case KindArray:
		if len(v.items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(depth + 1)
			writeValue(buf, item, indent, depth+1)
		}
		newline(depth)
		buf.WriteByte(']')
	case KindObject:
		if len(v.fields) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteByte('{')
		for i, f := range v.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(depth + 1)
			buf.WriteString(quote(f.Key))
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			writeValue(buf, f.Value, indent, depth+1)
		}
		newline(depth)
		buf.WriteByte('}')
	}
}

// quote encodes s as a JSON string literal without HTML escaping
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Truncate truncates a JSON string for single-line display
func Truncate(jsonStr string, maxLen int) string {
	if maxLen <= 3 {
		if len(jsonStr) <= maxLen {
			return jsonStr
		}
		return strings.Repeat(".", maxLen)
	}
	if len(jsonStr) <= maxLen {
		return jsonStr
	}

	// Try to truncate at a reasonable boundary
	truncated := jsonStr[:maxLen-3]

	// Find last space, comma, or bracket
	lastGood := strings.LastIndexAny(truncated, " ,{}[]")
	if lastGood > maxLen/2 {
		truncated = truncated[:lastGood]
	}

	return truncated + "..."
}
