// Copyright (c) 2026 Kyradjis
// released under the MIT license

package markdown

import (
	"strconv"
	"strings"
)

// FallbackColor is returned by ParseColor for anything it can't normalize.
const FallbackColor = 0xFFFFFF

// ParseColor normalizes any accepted color representation to a 24-bit RGB
// integer: #RRGGBB and 0xRRGGBB parse as hex; rgb(r,g,b) packs the decimal
// components; argb(a,r,g,b) does the same with the alpha component parsed
// and discarded. An unrecognized shape or an out-of-range component yields
// FallbackColor (white) rather than an error.
func ParseColor(s string) int {
	s = strings.TrimSpace(s)
	if hexColorRegex.MatchString(s) {
		return parseHexColor(s[1:])
	}
	if hex0xColorRegex.MatchString(s) {
		return parseHexColor(s[2:])
	}
	if m := rgbColorRegex.FindStringSubmatch(s); m != nil {
		return packRGB(m[1], m[2], m[3])
	}
	if m := argbColorRegex.FindStringSubmatch(s); m != nil {
		return packRGB(m[2], m[3], m[4])
	}
	return FallbackColor
}

func parseHexColor(hexDigits string) int {
	value, err := strconv.ParseUint(hexDigits, 16, 32)
	if err != nil {
		return FallbackColor
	}
	return int(value)
}

func packRGB(redStr, greenStr, blueStr string) int {
	red, okR := parseComponent(redStr)
	green, okG := parseComponent(greenStr)
	blue, okB := parseComponent(blueStr)
	if !okR || !okG || !okB {
		return FallbackColor
	}
	return red<<16 | green<<8 | blue
}

func parseComponent(s string) (int, bool) {
	value, err := strconv.Atoi(s)
	if err != nil || value < 0 || value > 255 {
		return 0, false
	}
	return value, true
}

func componentInRange(s string) bool {
	_, ok := parseComponent(s)
	return ok
}
