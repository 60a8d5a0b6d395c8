package textstat

import (
	"cmp"
	"slices"

	"github.com/heartmarshall/wordcount-backend/internal/domain"
)

// Rank returns at most limit words ordered by descending count. Words with
// equal counts keep their first-seen order; the order is not alphabetical.
// A limit below 1 is treated as 1. Tables with fewer words than limit are
// returned whole and never padded.
func Rank(t *FrequencyTable, limit int) []domain.RankedWord {
	if limit < 1 {
		limit = 1
	}

	ranked := make([]domain.RankedWord, 0, t.Len())
	if t == nil {
		return ranked
	}
	for _, w := range t.order {
		ranked = append(ranked, domain.RankedWord{Word: w, Count: t.counts[w]})
	}

	slices.SortStableFunc(ranked, func(a, b domain.RankedWord) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if len(ranked) > limit {
		ranked = slices.Clip(ranked[:limit])
	}
	return ranked
}
