package provider

// LookupResult is the structured result from a dictionary API provider.
// Found is false when the provider answered that it has no entry for the
// word; Message then carries the provider's explanation, if any.
type LookupResult struct {
	Word          string
	Found         bool
	Message       string
	Pronunciation string
	Definitions   []DefinitionResult
}

// DefinitionResult represents a single definition from an external dictionary.
type DefinitionResult struct {
	Type       string
	Definition string
	Example    string
	Emoji      string
	ImageURL   string
}

// NotFound builds a LookupResult for a word the provider has no entry for.
func NotFound(word, message string) *LookupResult {
	return &LookupResult{Word: word, Message: message}
}
