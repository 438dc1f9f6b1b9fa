package cellstore

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a raw cell value as returned by the store: a string, a number
// (float64), a bool, or nil for an absent value.
type Value struct {
	raw interface{}
}

// NewValue wraps a decoded JSON scalar.
func NewValue(raw interface{}) Value {
	return Value{raw: raw}
}

// Null is the "no value" sentinel.
func Null() Value {
	return Value{}
}

// Raw returns the decoded scalar.
func (v Value) Raw() interface{} {
	return v.raw
}

// IsNull reports whether the store returned no value at all.
func (v Value) IsNull() bool {
	return v.raw == nil
}

// IsEmpty reports whether the cell holds nothing usable: null or blank text.
func (v Value) IsEmpty() bool {
	if v.raw == nil {
		return true
	}
	if s, ok := v.raw.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	return false
}

// String renders the value as cell text.
func (v Value) String() string {
	switch t := v.raw.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(t)
	}
}
