// Copyright (c) 2026 Kyradjis
// released under the MIT license

package markdown

import "testing"

func TestParseColorShapes(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
	}{
		{"#1F5FE1", 0x1F5FE1},
		{"0x1F5FE1", 0x1F5FE1},
		{"0X1F5FE1", 0x1F5FE1},
		{"rgb(31,95,225)", 0x1F5FE1},
		{"rgb(31, 95, 225)", 0x1F5FE1},
		{"argb(128,31,95,225)", 0x1F5FE1},
		{"argb(255, 31, 95, 225)", 0x1F5FE1},
		{"#000000", 0x000000},
		{"rgb(0,0,0)", 0x000000},
		{"rgb(255,255,255)", 0xFFFFFF},
	}
	for _, tc := range testCases {
		if parsed := ParseColor(tc.input); parsed != tc.expected {
			t.Errorf("ParseColor(%q): expected %06X, got %06X", tc.input, tc.expected, parsed)
		}
	}
}

func TestParseColorFallback(t *testing.T) {
	for _, input := range []string{
		"rgb(256,0,0)",
		"rgb(-1,0,0)",
		"rgb(0,0)",
		"argb(0,0,0)",
		"#12345",
		"#1234567",
		"0x12345G",
		"red",
		"",
		"rgb(a,b,c)",
	} {
		if parsed := ParseColor(input); parsed != FallbackColor {
			t.Errorf("ParseColor(%q): expected fallback %06X, got %06X", input, FallbackColor, parsed)
		}
	}
}

func TestIsValidColor(t *testing.T) {
	valid := []string{"#1F5FE1", "0x1F5FE1", "rgb(31,95,225)", "argb(128,31,95,225)", "rgb(0, 0, 0)"}
	for _, input := range valid {
		if !IsValidColor(input) {
			t.Errorf("expected %q to be a valid color", input)
		}
	}
	invalid := []string{"rgb(256,0,0)", "argb(256,0,0,0)", "#GGGGGG", "1F5FE1", "rgb(1,2)", ""}
	for _, input := range invalid {
		if IsValidColor(input) {
			t.Errorf("expected %q to be an invalid color", input)
		}
	}
}
