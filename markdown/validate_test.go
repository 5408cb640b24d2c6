// Copyright (c) 2026 Kyradjis
// released under the MIT license

package markdown

import "testing"

func TestIsValidURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com",
		"https://example.com/path?query=1#fragment",
		"https://sub.domain.example.com",
		"https://example.com:8080/x",
		"https://localhost",
	}
	for _, input := range valid {
		if !IsValidURL(input) {
			t.Errorf("expected %q to be a valid url", input)
		}
	}

	invalid := []string{
		"not-a-url",
		"ftp://example.com",
		"example.com",
		"https://",
		"https://exa mple.com",
		"https://-example.com",
		"https://example-.com",
		"//example.com",
		"",
	}
	for _, input := range invalid {
		if IsValidURL(input) {
			t.Errorf("expected %q to be an invalid url", input)
		}
	}
}
