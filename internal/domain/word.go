package domain

// Definition is one dictionary sense of a word. Every field is optional and
// passed through from the dictionary provider as is.
type Definition struct {
	Type       string `json:"type"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	Emoji      string `json:"emoji"`
	ImageURL   string `json:"imageUrl"`
}

// RankedWord is a normalized word with its occurrence count.
type RankedWord struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// EnrichedWord is a ranked word with the definitions found for it.
// Definitions is never nil so that it serializes as an empty JSON array.
type EnrichedWord struct {
	Word        string       `json:"word"`
	Count       int          `json:"count"`
	Definitions []Definition `json:"definitions"`
}
