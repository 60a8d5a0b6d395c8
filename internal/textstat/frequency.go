// Package textstat turns free text into word frequencies and ranks them.
//
// A word is a maximal run of Unicode letters. Digits, punctuation, symbols
// and whitespace only separate words and are never counted. Words are
// lower-cased without regard to locale before counting.
//
// All functions are pure and safe for concurrent use.
package textstat

import (
	"unicode"

	"github.com/heartmarshall/wordcount-backend/internal/domain"
)

// FrequencyTable maps normalized words to occurrence counts and remembers the
// order in which each word was first seen. It is never modified after Count
// returns, so it can be shared between goroutines without locking.
type FrequencyTable struct {
	counts map[string]int
	order  []string
	total  int
}

// Count tokenizes text and builds its frequency table. Text without any
// letters yields an empty table.
func Count(text string) *FrequencyTable {
	t := &FrequencyTable{counts: make(map[string]int)}

	start := -1
	for i, r := range text {
		if unicode.IsLetter(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			t.add(domain.NormalizeWord(text[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		t.add(domain.NormalizeWord(text[start:]))
	}

	return t
}

func (t *FrequencyTable) add(word string) {
	if _, seen := t.counts[word]; !seen {
		t.order = append(t.order, word)
	}
	t.counts[word]++
	t.total++
}

// Len returns the number of distinct words.
func (t *FrequencyTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

// Total returns the number of word tokens counted, which equals the sum of
// all counts.
func (t *FrequencyTable) Total() int {
	if t == nil {
		return 0
	}
	return t.total
}

// Get returns the count for an already normalized word.
func (t *FrequencyTable) Get(word string) int {
	if t == nil {
		return 0
	}
	return t.counts[word]
}

// Words returns the distinct words in first-seen order. The slice is a copy.
func (t *FrequencyTable) Words() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}
