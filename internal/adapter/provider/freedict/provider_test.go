package freedict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(url string) *Provider {
	return NewProviderWithURL(url, newTestLogger(), WithRetryDelay(time.Millisecond))
}

func TestProvider_Lookup_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "hello",
		"phonetics": [
			{"text": "/həˈloʊ/", "audio": "https://example.com/hello-us.mp3"},
			{"text": "/hɛˈləʊ/", "audio": "https://example.com/hello-uk.mp3"}
		],
		"meanings": [
			{
				"partOfSpeech": "noun",
				"definitions": [
					{"definition": "A greeting.", "example": "She gave a cheerful hello."}
				]
			},
			{
				"partOfSpeech": "interjection",
				"definitions": [
					{"definition": "Used as a greeting.", "example": "Hello, how are you?"},
					{"definition": "Used to attract attention.", "example": ""}
				]
			}
		]
	}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hello" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	result, err := p.Lookup(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.Found {
		t.Fatalf("expected found result, got %+v", result)
	}

	if result.Word != "hello" {
		t.Errorf("Word = %q, want %q", result.Word, "hello")
	}
	if result.Pronunciation != "/həˈloʊ/" {
		t.Errorf("Pronunciation = %q, want %q", result.Pronunciation, "/həˈloʊ/")
	}

	// 3 definitions total: 1 noun + 2 interjection
	if len(result.Definitions) != 3 {
		t.Fatalf("len(Definitions) = %d, want 3", len(result.Definitions))
	}

	d0 := result.Definitions[0]
	if d0.Definition != "A greeting." {
		t.Errorf("Definitions[0].Definition = %q, want %q", d0.Definition, "A greeting.")
	}
	if d0.Type != "noun" {
		t.Errorf("Definitions[0].Type = %q, want %q", d0.Type, "noun")
	}
	if d0.Example != "She gave a cheerful hello." {
		t.Errorf("Definitions[0].Example = %q", d0.Example)
	}

	d2 := result.Definitions[2]
	if d2.Type != "interjection" {
		t.Errorf("Definitions[2].Type = %q, want %q", d2.Type, "interjection")
	}
	if d2.Example != "" {
		t.Errorf("Definitions[2].Example = %q, want empty", d2.Example)
	}
}

func TestProvider_Lookup_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"No Definitions Found","message":"Sorry pal, we couldn't find definitions for the word you were looking for.","resolution":"You can try the search again at later time or head to the web instead."}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	result, err := p.Lookup(context.Background(), "asdfxyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || result.Found {
		t.Fatalf("expected not-found result for 404, got %+v", result)
	}
	if result.Message != "Sorry pal, we couldn't find definitions for the word you were looking for." {
		t.Errorf("Message = %q", result.Message)
	}
}

func TestProvider_Lookup_NotFoundTitleOnly(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"No Definitions Found"}`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	result, err := p.Lookup(context.Background(), "asdfxyz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != "No Definitions Found" {
		t.Errorf("Message = %q, want title", result.Message)
	}
}

func TestProvider_Lookup_ServerErrorRetrySuccess(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := callCount.Add(1)
		if n == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"word":"test","phonetics":[],"meanings":[]}]`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	result, err := p.Lookup(context.Background(), "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.Found {
		t.Fatal("expected found result after retry")
	}
	if result.Word != "test" {
		t.Errorf("Word = %q, want %q", result.Word, "test")
	}
	if got := callCount.Load(); got != 2 {
		t.Errorf("call count = %d, want 2", got)
	}
}

func TestProvider_Lookup_ServerErrorBothAttemptsFail(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Lookup(context.Background(), "fail")
	if err == nil {
		t.Fatal("expected error when both attempts fail")
	}
	if got := callCount.Load(); got != 2 {
		t.Errorf("call count = %d, want 2", got)
	}
}

func TestProvider_Lookup_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`not valid json`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	_, err := p.Lookup(context.Background(), "bad")
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestProvider_Lookup_CancelledBeforeStart(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := newTestProvider(srv.URL)
	_, err := p.Lookup(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got := callCount.Load(); got != 0 {
		t.Errorf("call count = %d, want 0", got)
	}
}

func TestProvider_Lookup_MultipleEntries(t *testing.T) {
	t.Parallel()

	// Two entries (different etymologies).
	body := `[
		{
			"word": "run",
			"phonetic": "/rʌn/",
			"phonetics": [{"text": "/rʌn/", "audio": "https://example.com/run-us.mp3"}],
			"meanings": [
				{
					"partOfSpeech": "verb",
					"definitions": [{"definition": "To move fast.", "example": "She runs every day."}]
				}
			]
		},
		{
			"word": "run",
			"phonetics": [{"text": "/rʌn/", "audio": ""}],
			"meanings": [
				{
					"partOfSpeech": "noun",
					"definitions": [{"definition": "An act of running.", "example": ""}]
				}
			]
		}
	]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(body))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	result, err := p.Lookup(context.Background(), "run")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Definitions should be concatenated: 1 verb + 1 noun = 2.
	if len(result.Definitions) != 2 {
		t.Fatalf("len(Definitions) = %d, want 2", len(result.Definitions))
	}
	if result.Definitions[0].Type != "verb" {
		t.Errorf("Definitions[0].Type = %q, want verb", result.Definitions[0].Type)
	}
	if result.Definitions[1].Type != "noun" {
		t.Errorf("Definitions[1].Type = %q, want noun", result.Definitions[1].Type)
	}
	if result.Pronunciation != "/rʌn/" {
		t.Errorf("Pronunciation = %q, want /rʌn/", result.Pronunciation)
	}
}

// TestProvider_Lookup_EmptyArray verifies that an empty JSON array is a found
// word with no definitions, not a miss.
func TestProvider_Lookup_EmptyArray(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	p := newTestProvider(srv.URL)
	result, err := p.Lookup(context.Background(), "empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result == nil || !result.Found {
		t.Fatal("expected found result for empty array")
	}
	if result.Word != "empty" {
		t.Errorf("Word = %q, want %q", result.Word, "empty")
	}
	if len(result.Definitions) != 0 {
		t.Errorf("len(Definitions) = %d, want 0", len(result.Definitions))
	}
}

func TestFirstPronunciation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []apiEntry
		want    string
	}{
		{
			name:    "entry phonetic wins",
			entries: []apiEntry{{Phonetic: "/a/", Phonetics: []apiPhonetic{{Text: "/b/"}}}},
			want:    "/a/",
		},
		{
			name:    "falls back to phonetics",
			entries: []apiEntry{{Phonetics: []apiPhonetic{{Audio: "x.mp3"}, {Text: "/b/"}}}},
			want:    "/b/",
		},
		{
			name:    "later entry",
			entries: []apiEntry{{}, {Phonetic: "/c/"}},
			want:    "/c/",
		},
		{
			name:    "none",
			entries: []apiEntry{{}},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := firstPronunciation(tt.entries); got != tt.want {
				t.Errorf("firstPronunciation() = %q, want %q", got, tt.want)
			}
		})
	}
}
