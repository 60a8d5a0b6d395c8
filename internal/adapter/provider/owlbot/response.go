package owlbot

// apiEntry is the body of a successful Owlbot dictionary response.
type apiEntry struct {
	Word          string          `json:"word"`
	Pronunciation string          `json:"pronunciation"`
	Definitions   []apiDefinition `json:"definitions"`
}

// apiDefinition is one sense of the word. Any field may be null.
type apiDefinition struct {
	Type       string `json:"type"`
	Definition string `json:"definition"`
	Example    string `json:"example"`
	ImageURL   string `json:"image_url"`
	Emoji      string `json:"emoji"`
}

// apiMessage is an element of the array Owlbot returns with HTTP 404.
type apiMessage struct {
	Message string `json:"message"`
}
