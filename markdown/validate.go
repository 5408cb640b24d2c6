// Copyright (c) 2026 Kyradjis
// released under the MIT license

package markdown

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	// one label of a hostname; the full host is dot-separated labels
	domainLabelRegex = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?$`)

	hexColorRegex   = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	hex0xColorRegex = regexp.MustCompile(`^0[xX][0-9A-Fa-f]{6}$`)
	rgbColorRegex   = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	argbColorRegex  = regexp.MustCompile(`^argb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
)

// IsValidURL reports whether s is a hyperlink target the formatter will
// accept: an absolute http or https URL whose host is made of plain
// domain labels.
func IsValidURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	parsed, err := url.Parse(s)
	if err != nil || !parsed.IsAbs() {
		return false
	}
	host := parsed.Hostname()
	if host == "" {
		return false
	}
	for _, label := range strings.Split(host, ".") {
		if !domainLabelRegex.MatchString(label) {
			return false
		}
	}
	return true
}

// IsValidColor reports whether s is one of the accepted color shapes:
// #RRGGBB, 0xRRGGBB, rgb(r,g,b) or argb(a,r,g,b), with every decimal
// component in [0,255].
func IsValidColor(s string) bool {
	s = strings.TrimSpace(s)
	if hexColorRegex.MatchString(s) || hex0xColorRegex.MatchString(s) {
		return true
	}
	if m := rgbColorRegex.FindStringSubmatch(s); m != nil {
		return componentsInRange(m[1:])
	}
	if m := argbColorRegex.FindStringSubmatch(s); m != nil {
		return componentsInRange(m[1:])
	}
	return false
}

func componentsInRange(components []string) bool {
	for _, component := range components {
		if !componentInRange(component) {
			return false
		}
	}
	return true
}
