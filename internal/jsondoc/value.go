// Package jsondoc holds the immutable JSON document model used by the viewer:
// an order-preserving decoded value, the variant classifier, the path builder
// and the path evaluator that resolves built paths back to values.
package jsondoc

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the variant of a JSON value
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lower-case variant name (null, boolean, number, string, array, object)
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Expandable reports whether values of this kind have children
func (k Kind) Expandable() bool {
	return k == KindArray || k == KindObject
}

// Field is one key/value member of an object, in insertion order
type Field struct {
	Key   string
	Value *Value
}

// Value is a decoded JSON value. It is never mutated after Parse returns;
// a changed document is a new tree.
type Value struct {
	kind   Kind
	b      bool
	n      float64
	raw    string // number literal as written
	s      string
	items  []*Value
	fields []Field
}

// Null returns a null value
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a boolean value
func Bool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Number returns a number value
func Number(n float64) *Value {
	return &Value{kind: KindNumber, n: n, raw: formatNumber(n)}
}

// String returns a string value
func String(s string) *Value { return &Value{kind: KindString, s: s} }

// Array returns an array value holding items in order
func Array(items ...*Value) *Value {
	return &Value{kind: KindArray, items: items}
}

// Object returns an object value. Later duplicates of a key replace the
// earlier value at the earlier position.
func Object(fields ...Field) *Value {
	b := newObjectBuilder(len(fields))
	for _, f := range fields {
		b.set(f.Key, f.Value)
	}
	return b.value()
}

// objectBuilder assembles an object's members. The key index only lives
// while the object is being built.
type objectBuilder struct {
	fields []Field
	index  map[string]int
}

func newObjectBuilder(capacity int) *objectBuilder {
	return &objectBuilder{
		fields: make([]Field, 0, capacity),
		index:  make(map[string]int, capacity),
	}
}

func (b *objectBuilder) set(key string, val *Value) {
	if i, ok := b.index[key]; ok {
		b.fields[i].Value = val
		return
	}
	b.index[key] = len(b.fields)
	b.fields = append(b.fields, Field{Key: key, Value: val})
}

func (b *objectBuilder) value() *Value {
	return &Value{kind: KindObject, fields: b.fields}
}

// Classify returns the variant of v. A nil value classifies as null.
func Classify(v *Value) Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

// Kind returns the variant of v
func (v *Value) Kind() Kind { return Classify(v) }

// Bool returns the boolean payload
func (v *Value) Bool() bool { return v != nil && v.b }

// Float returns the number payload
func (v *Value) Float() float64 {
	if v == nil {
		return 0
	}
	return v.n
}

// Literal returns the number as written in the source document
func (v *Value) Literal() string {
	if v == nil {
		return ""
	}
	return v.raw
}

// Str returns the string payload
func (v *Value) Str() string {
	if v == nil {
		return ""
	}
	return v.s
}

// Items returns the array elements
func (v *Value) Items() []*Value {
	if v == nil {
		return nil
	}
	return v.items
}

// Fields returns the object members in insertion order
func (v *Value) Fields() []Field {
	if v == nil {
		return nil
	}
	return v.fields
}

// Len returns the number of children of an array or object, 0 otherwise
func (v *Value) Len() int {
	switch Classify(v) {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	default:
		return 0
	}
}

// Get returns the member stored under key
func (v *Value) Get(key string) (*Value, bool) {
	for _, f := range v.Fields() {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Index returns the array element at i
func (v *Value) Index(i int) (*Value, bool) {
	items := v.Items()
	if i < 0 || i >= len(items) {
		return nil, false
	}
	return items[i], true
}

// Child returns the i-th child and the key that addresses it: the member key
// for objects, the decimal index for arrays.
func (v *Value) Child(i int) (string, *Value) {
	switch Classify(v) {
	case KindArray:
		return strconv.Itoa(i), v.items[i]
	case KindObject:
		return v.fields[i].Key, v.fields[i].Value
	}
	return "", nil
}

// ScalarString returns the text a scalar shows in the graph and is searched by
func ScalarString(v *Value) string {
	switch Classify(v) {
	case KindNull:
		return "null"
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return formatNumber(v.n)
	case KindString:
		return v.s
	case KindArray:
		return "Array(" + strconv.Itoa(len(v.items)) + ")"
	case KindObject:
		return "Object(" + strconv.Itoa(len(v.fields)) + ")"
	}
	return ""
}

// formatNumber renders n the way JavaScript's String(n) does for finite values
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		if exp[0] == '+' {
			return mant + "e+" + strings.TrimLeft(exp[1:], "0")
		}
		return mant + "e-" + strings.TrimLeft(exp[1:], "0")
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
