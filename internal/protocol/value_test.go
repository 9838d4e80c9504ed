package protocol

import "testing"

func TestValueString(t *testing.T) {
	testCases := []struct {
		v    Value
		want string
	}{
		{Number(42), "42"},
		{Number(2048000), "2048000"},
		{Number(1.25), "1.25"},
		{Bool(true), "true"},
		{Text("cbr"), "cbr"},
	}

	for _, tc := range testCases {
		if got := tc.v.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestParseValue(t *testing.T) {
	testCases := []struct {
		in   string
		want Value
	}{
		{"true", Bool(true)},
		{"false", Bool(false)},
		{"42", Number(42)},
		{"-0.5", Number(-0.5)},
		{"vbr", Text("vbr")},
		{"1x", Text("1x")},
		{"", Text("")},
	}

	for _, tc := range testCases {
		if got := ParseValue(tc.in); got != tc.want {
			t.Errorf("ParseValue(%q) = %#v, want %#v", tc.in, got, tc.want)
		}
	}
}

func TestTruthy(t *testing.T) {
	testCases := []struct {
		v    Value
		want bool
	}{
		{nil, false},
		{Bool(true), true},
		{Bool(false), false},
		{Number(0), false},
		{Number(3), true},
		{Text(""), false},
		{Text("false"), false},
		{Text("on"), true},
	}

	for _, tc := range testCases {
		if got := Truthy(tc.v); got != tc.want {
			t.Errorf("Truthy(%#v) = %v, want %v", tc.v, got, tc.want)
		}
	}
}

func TestValueOf(t *testing.T) {
	if ValueOf(uint32(7)) != Number(7) {
		t.Error("uint32 should map to Number")
	}
	if ValueOf("x") != Text("x") {
		t.Error("string should map to Text")
	}
	if ValueOf(Bool(true)) != Bool(true) {
		t.Error("Value should pass through")
	}
	if ValueOf([]int{1}) != nil {
		t.Error("slices are not scalars")
	}
}
