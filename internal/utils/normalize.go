package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeCity rewrites a city name into canonical title case:
// "  nOIDA " and "NOIDA" both become "Noida". The transform is
// idempotent, so re-normalizing stored values is safe.
func NormalizeCity(city string) string {
	city = strings.TrimSpace(strings.ToLower(city))
	if city == "" {
		return ""
	}

	words := strings.Split(city, " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + word[size:]
	}
	return strings.Join(words, " ")
}
