// Copyright (c) 2026 Kyradjis
// released under the MIT license

package utils

import "testing"

func TestCasefoldName(t *testing.T) {
	testCases := []struct {
		name     string
		folded   string
		errored  bool
	}{
		{"Dragon", "dragon", false},
		{"dragon", "dragon", false},
		{"DRAGON", "dragon", false},
		{"Ender Dragon", "", true},
		{"drag*n", "", true},
		{"", "", true},
	}

	for _, tc := range testCases {
		folded, err := CasefoldName(tc.name)
		if tc.errored != (err != nil) {
			t.Errorf("CasefoldName(%q): expected error %t, got %v", tc.name, tc.errored, err)
			continue
		}
		if folded != tc.folded {
			t.Errorf("CasefoldName(%q): expected %q, got %q", tc.name, tc.folded, folded)
		}
	}
}

func TestCasefoldEntityType(t *testing.T) {
	testCases := []struct {
		name    string
		folded  string
		errored bool
	}{
		{"BlueLib:Dragon", "bluelib:dragon", false},
		{"minecraft:creeper", "minecraft:creeper", false},
		{"Creeper", "creeper", false},
		{"bad namespace:dragon", "", true},
	}

	for _, tc := range testCases {
		folded, err := CasefoldEntityType(tc.name)
		if tc.errored != (err != nil) {
			t.Errorf("CasefoldEntityType(%q): expected error %t, got %v", tc.name, tc.errored, err)
			continue
		}
		if folded != tc.folded {
			t.Errorf("CasefoldEntityType(%q): expected %q, got %q", tc.name, tc.folded, folded)
		}
	}
}
