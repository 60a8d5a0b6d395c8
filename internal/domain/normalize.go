package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeWord lower-cases a word without regard to locale, so that
// "Hiawatha", "HIAWATHA" and "hiawatha" compare equal. Surrounding
// whitespace is trimmed.
//
// A cases.Caser keeps state and is not safe for concurrent use, so a fresh
// one is created per call.
func NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if word == "" {
		return ""
	}
	return cases.Lower(language.Und).String(word)
}
