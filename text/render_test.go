// Copyright (c) 2026 Kyradjis
// released under the MIT license

package text

import "testing"

func TestRenderPlain(t *testing.T) {
	tree := Composite(
		Leaf("Hello "),
		Styled("world", DefaultStyle().WithBold().WithColor(0xFF0000)),
	)
	if plain := RenderPlain(tree); plain != "Hello world" {
		t.Errorf("expected `Hello world`, got `%s`", plain)
	}
}

func TestNearestLegacyColor(t *testing.T) {
	testCases := []struct {
		rgb  int
		code byte
	}{
		{0x000000, '0'},
		{0xFFFFFF, 'f'},
		{0xFF5555, 'c'},
		{0xFE5456, 'c'}, // close to red
		{0x0000AA, '1'},
		{0xFFAA00, '6'},
	}
	for _, tc := range testCases {
		if code := NearestLegacyColor(tc.rgb); code != tc.code {
			t.Errorf("NearestLegacyColor(%06x): expected %c, got %c", tc.rgb, tc.code, code)
		}
	}
}

func TestRenderFormatCodes(t *testing.T) {
	tree := Composite(
		Leaf("Hello "),
		Styled("world", DefaultStyle().WithBold()),
		Leaf("!"),
	)
	expected := "Hello §r§lworld§r!"
	if rendered := RenderFormatCodes(tree); rendered != expected {
		t.Errorf("expected `%s`, got `%s`", expected, rendered)
	}
}

func TestRenderFormatCodesColor(t *testing.T) {
	tree := Styled("alert", DefaultStyle().WithColor(0xFF0000).WithBold())
	expected := "§c§lalert"
	if rendered := RenderFormatCodes(tree); rendered != expected {
		t.Errorf("expected `%s`, got `%s`", expected, rendered)
	}
}

func TestRenderIRC(t *testing.T) {
	tree := Composite(
		Leaf("a "),
		Styled("b", DefaultStyle().WithBold()),
		Leaf(" c"),
	)
	expected := "a \x02b\x0f c"
	if rendered := RenderIRC(tree); rendered != expected {
		t.Errorf("expected %q, got %q", expected, rendered)
	}
}

func TestRenderIRCColor(t *testing.T) {
	tree := Styled("x", DefaultStyle().WithColor(0xFF0000))
	expected := "\x034x\x0f"
	if rendered := RenderIRC(tree); rendered != expected {
		t.Errorf("expected %q, got %q", expected, rendered)
	}
}

func TestRenderIRCEscapesDollar(t *testing.T) {
	if rendered := RenderIRC(Leaf("pay $5")); rendered != "pay $5" {
		t.Errorf("expected %q, got %q", "pay $5", rendered)
	}
}
