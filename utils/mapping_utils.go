package utils

import (
	"strings"
)

// sizeAliases maps spelled-out size names to their catalog codes
var sizeAliases = map[string]string{
	"EXTRA SMALL":       "XS",
	"SMALL":             "S",
	"MEDIUM":            "M",
	"LARGE":             "L",
	"EXTRA LARGE":       "XL",
	"XXL":               "2XL",
	"EXTRA EXTRA LARGE": "2XL",
}

// NormalizeSize normalizes size values to standard format
// Medium -> M, Extra Large -> XL, XXL -> 2XL
func NormalizeSize(size string) string {
	sizeUpper := strings.ToUpper(strings.Join(strings.Fields(size), " "))
	if code, exists := sizeAliases[sizeUpper]; exists {
		return code
	}
	return sizeUpper
}

// MatchSize returns the entry of sizes matching size after normalization.
// An empty size, or an empty size list, matches as given.
func MatchSize(sizes []string, size string) (string, bool) {
	size = strings.TrimSpace(size)
	if size == "" || len(sizes) == 0 {
		return size, true
	}
	want := NormalizeSize(size)
	for _, candidate := range sizes {
		if NormalizeSize(candidate) == want {
			return candidate, true
		}
	}
	return "", false
}

// MatchColor returns the entry of colors equal to color ignoring case
func MatchColor(colors []string, color string) (string, bool) {
	color = strings.TrimSpace(color)
	if color == "" || len(colors) == 0 {
		return color, true
	}
	for _, candidate := range colors {
		if strings.EqualFold(strings.TrimSpace(candidate), color) {
			return candidate, true
		}
	}
	return "", false
}

// CapitalizeWords capitalizes the first letter of each word
func CapitalizeWords(s string) string {
	if s == "" {
		return s
	}
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
