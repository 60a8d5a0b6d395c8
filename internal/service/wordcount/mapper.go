package wordcount

import (
	"github.com/heartmarshall/wordcount-backend/internal/domain"
	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

// toOutcome converts a provider answer into a lookup outcome. A nil result
// is treated as a miss without message.
func toOutcome(res *provider.LookupResult) domain.Outcome {
	switch {
	case res == nil:
		return domain.NotFound("")
	case !res.Found:
		return domain.NotFound(res.Message)
	default:
		return domain.Found(mapDefinitions(res.Definitions))
	}
}

func mapDefinitions(defs []provider.DefinitionResult) []domain.Definition {
	out := make([]domain.Definition, 0, len(defs))
	for _, d := range defs {
		out = append(out, domain.Definition{
			Type:       d.Type,
			Definition: d.Definition,
			Example:    d.Example,
			Emoji:      d.Emoji,
			ImageURL:   d.ImageURL,
		})
	}
	return out
}

// Assemble joins ranked words with their lookup outcomes. The output has the
// same length and order as the input; words that were not found or whose
// lookup failed get an empty definition list.
func Assemble(outcomes []domain.WordOutcome) []domain.EnrichedWord {
	words := make([]domain.EnrichedWord, len(outcomes))
	for i, o := range outcomes {
		defs := []domain.Definition{}
		if o.Outcome.Status == domain.LookupStatusFound && len(o.Outcome.Definitions) > 0 {
			defs = make([]domain.Definition, len(o.Outcome.Definitions))
			copy(defs, o.Outcome.Definitions)
		}
		words[i] = domain.EnrichedWord{
			Word:        o.Word,
			Count:       o.Count,
			Definitions: defs,
		}
	}
	return words
}
