// Copyright (c) 2026 Kyradjis
// released under the MIT license

package text

import (
	"strings"

	"github.com/ergochat/irc-go/ircfmt"
)

// legacy 16-color game palette, index = format code value
var legacyPalette = [16]int{
	0x000000, // 0 black
	0x0000AA, // 1 dark blue
	0x00AA00, // 2 dark green
	0x00AAAA, // 3 dark aqua
	0xAA0000, // 4 dark red
	0xAA00AA, // 5 dark purple
	0xFFAA00, // 6 gold
	0xAAAAAA, // 7 gray
	0x555555, // 8 dark gray
	0x5555FF, // 9 blue
	0x55FF55, // a green
	0x55FFFF, // b aqua
	0xFF5555, // c red
	0xFF55FF, // d light purple
	0xFFFF55, // e yellow
	0xFFFFFF, // f white
}

const legacyCodeDigits = "0123456789abcdef"

// ircPalette approximates the standard IRC colors by RGB value; the names
// are the bracketed forms accepted by ircfmt.
var ircPalette = []struct {
	name string
	rgb  int
}{
	{"white", 0xFFFFFF},
	{"black", 0x000000},
	{"blue", 0x00007F},
	{"green", 0x009300},
	{"red", 0xFF0000},
	{"brown", 0x7F0000},
	{"magenta", 0x9C009C},
	{"orange", 0xFC7F00},
	{"yellow", 0xFFFF00},
	{"light green", 0x00FC00},
	{"cyan", 0x009393},
	{"light cyan", 0x00FFFF},
	{"light blue", 0x0000FC},
	{"pink", 0xFF00FF},
	{"grey", 0x7F7F7F},
	{"light grey", 0xD2D2D2},
}

// RenderPlain renders the tree as visible text with all styling discarded.
func RenderPlain(t *StyledText) string {
	return t.Flatten()
}

// NearestLegacyColor maps a 24-bit RGB color to the closest entry of the
// legacy 16-color palette, returned as a format code character (0-9, a-f).
func NearestLegacyColor(rgb int) byte {
	best, bestDistance := 0, -1
	for i, candidate := range legacyPalette {
		distance := colorDistance(rgb, candidate)
		if bestDistance == -1 || distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	return legacyCodeDigits[best]
}

func colorDistance(a, b int) int {
	dr := ((a >> 16) & 0xFF) - ((b >> 16) & 0xFF)
	dg := ((a >> 8) & 0xFF) - ((b >> 8) & 0xFF)
	db := (a & 0xFF) - (b & 0xFF)
	return dr*dr + dg*dg + db*db
}

// RenderFormatCodes renders the tree using §-prefixed legacy format codes:
// a color code (if any) followed by §l/§o/§n/§m/§k toggles before each run,
// with §r resetting between differently-styled runs. Click events have no
// format-code representation and are dropped.
func RenderFormatCodes(t *StyledText) string {
	var state formatCodeState
	var out strings.Builder
	renderFormatCodesInto(&out, t, &state)
	return out.String()
}

type formatCodeState struct {
	last    Style
	started bool
}

func renderFormatCodesInto(out *strings.Builder, t *StyledText, state *formatCodeState) {
	if t.Text != "" {
		writeFormatCodes(out, t.Style, state)
		out.WriteString(t.Text)
	}
	for _, child := range t.Children {
		renderFormatCodesInto(out, child, state)
	}
}

func writeFormatCodes(out *strings.Builder, style Style, state *formatCodeState) {
	if state.started {
		if style.Equal(state.last) {
			return
		}
		out.WriteString("§r")
	}
	state.last = style
	state.started = true
	if style.HasColor() {
		out.WriteString("§")
		out.WriteByte(NearestLegacyColor(style.Color))
	}
	if style.Obfuscated {
		out.WriteString("§k")
	}
	if style.Bold {
		out.WriteString("§l")
	}
	if style.Strikethrough {
		out.WriteString("§m")
	}
	if style.Underline {
		out.WriteString("§n")
	}
	if style.Italic {
		out.WriteString("§o")
	}
}

// NearestIRCColor maps a 24-bit RGB color to the name of the closest
// standard IRC color, in the form ircfmt accepts inside $c[...].
func NearestIRCColor(rgb int) string {
	best, bestDistance := 0, -1
	for i, candidate := range ircPalette {
		distance := colorDistance(rgb, candidate.rgb)
		if bestDistance == -1 || distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	return ircPalette[best].name
}

// RenderIRC renders the tree as an IRC message with formatting control
// codes, by way of ircfmt's escape syntax. Obfuscated text maps to reverse
// video; click events have no IRC representation and are dropped.
func RenderIRC(t *StyledText) string {
	var out strings.Builder
	renderIRCInto(&out, t)
	return ircfmt.Unescape(out.String())
}

func renderIRCInto(out *strings.Builder, t *StyledText) {
	if t.Text != "" {
		style := t.Style
		styled := style.Bold || style.Italic || style.Underline || style.Strikethrough || style.Obfuscated || style.HasColor()
		if styled {
			if style.Bold {
				out.WriteString("$b")
			}
			if style.Italic {
				out.WriteString("$i")
			}
			if style.Underline {
				out.WriteString("$u")
			}
			if style.Strikethrough {
				out.WriteString("$s")
			}
			if style.Obfuscated {
				out.WriteString("$v")
			}
			if style.HasColor() {
				out.WriteString("$c[" + NearestIRCColor(style.Color) + "]")
			}
		}
		out.WriteString(strings.ReplaceAll(t.Text, "$", "$$"))
		if styled {
			out.WriteString("$r")
		}
	}
	for _, child := range t.Children {
		renderIRCInto(out, child)
	}
}
