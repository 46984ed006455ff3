package ident

import (
	"encoding/json"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in    any
		want  string
		valid bool
	}{
		{" 007", "007", true},
		{"007 ", "007", true},
		{"\t\n", "", false},
		{"", "", false},
		{nil, "", false},
		{123, "123", true},
		{int64(9876543210), "9876543210", true},
		{123.0, "123", true},
		{6.25, "6.25", true},
		{json.Number("123"), "123", true},
		{json.Number("123.0"), "123", true},
		{json.Number("0042"), "0042", true},
		{json.Number("1e3"), "1000", true},
		{true, "true", true},
	}
	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		if got != tc.want || ok != tc.valid {
			t.Fatalf("Normalize(%#v) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.valid)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []any{" 007", "a b ", 12, 3.5, json.Number("40.0"), nil, "  "}
	for _, in := range inputs {
		once, _ := Normalize(in)
		twice, _ := Normalize(once)
		if once != twice {
			t.Fatalf("Normalize not idempotent for %#v: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeKeepsLeadingZeros(t *testing.T) {
	a, _ := Normalize("007")
	b, _ := Normalize(7)
	if a == b {
		t.Fatalf("expected %q and %q to stay distinct", a, b)
	}
}

func TestCanonicalNumber(t *testing.T) {
	cases := map[string]string{
		"123":          "123",
		"0123":         "0123",
		"123.0":        "123",
		"1.2345678E+8": "123456780",
		"12.50":        "12.5",
		" 42 ":         "42",
		"abc":          "abc",
	}
	for in, want := range cases {
		if got := CanonicalNumber(in); got != want {
			t.Fatalf("CanonicalNumber(%q) = %q, want %q", in, got, want)
		}
	}
}
