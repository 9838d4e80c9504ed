package protocol

import (
	"encoding/json"
	"strconv"
)

// Value is the scalar carried by a property message. It is one of Bool,
// Number or Text; a nil Value means the frame had no usable value.
type Value interface {
	// String renders the value the way it is shown in a text element.
	String() string
	isValue()
}

// Bool is a boolean property value.
type Bool bool

// Number is a numeric property value. JSON numbers are decoded as float64.
type Number float64

// Text is a string property value.
type Text string

func (Bool) isValue()   {}
func (Number) isValue() {}
func (Text) isValue()   {}

func (b Bool) String() string { return strconv.FormatBool(bool(b)) }

// String formats without exponent or trailing zeros, so 42 renders as "42".
func (n Number) String() string { return strconv.FormatFloat(float64(n), 'f', -1, 64) }

func (t Text) String() string { return string(t) }

// ValueOf converts a Go scalar into a Value. Unsupported types yield nil.
func ValueOf(v any) Value {
	switch x := v.(type) {
	case Value:
		return x
	case bool:
		return Bool(x)
	case string:
		return Text(x)
	case int:
		return Number(x)
	case int32:
		return Number(x)
	case int64:
		return Number(x)
	case uint:
		return Number(x)
	case uint32:
		return Number(x)
	case uint64:
		return Number(x)
	case float32:
		return Number(x)
	case float64:
		return Number(x)
	}
	return nil
}

// ParseValue interprets user input: "true"/"false" become Bool, anything
// numeric becomes Number, the rest is Text.
func ParseValue(s string) Value {
	if s == "true" || s == "false" {
		return Bool(s == "true")
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Number(f)
	}
	return Text(s)
}

// Truthy maps a value onto the checked state of a boolean-style control.
func Truthy(v Value) bool {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case Number:
		return x != 0
	case Text:
		if b, err := strconv.ParseBool(string(x)); err == nil {
			return b
		}
		return x != ""
	}
	return false
}

// decodeValue reads a raw JSON scalar. Objects, arrays and null decode to nil.
func decodeValue(raw json.RawMessage) Value {
	if len(raw) == 0 {
		return nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}

	switch x := v.(type) {
	case bool:
		return Bool(x)
	case float64:
		return Number(x)
	case string:
		return Text(x)
	}
	return nil
}
