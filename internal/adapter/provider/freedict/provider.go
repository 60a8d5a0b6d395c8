package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

const (
	defaultBaseURL    = "https://api.dictionaryapi.dev/api/v2/entries/en"
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
)

// Name identifies this provider in configuration and cache keys.
const Name = "freedict"

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	retryDelay time.Duration
	log        *slog.Logger
}

// Option customizes a Provider.
type Option func(*Provider)

// WithTimeout sets the per-request HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.httpClient.Timeout = d
		}
	}
}

// WithRetryDelay sets the pause before the single retry.
func WithRetryDelay(d time.Duration) Option {
	return func(p *Provider) { p.retryDelay = d }
}

// NewProvider creates a Provider with the default FreeDictionary API URL.
func NewProvider(logger *slog.Logger, opts ...Option) *Provider {
	return NewProviderWithURL(defaultBaseURL, logger, opts...)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL string, logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		retryDelay: defaultRetryDelay,
		log:        logger.With("adapter", Name),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string { return Name }

// Lookup fetches the definitions of word.
// HTTP 404 yields a result with Found == false rather than an error.
func (p *Provider) Lookup(ctx context.Context, word string) (*provider.LookupResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("freedict: %w", err)
	}

	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("freedict: create request: %w", err)
	}

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("freedict: read body: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return provider.NotFound(word, notFoundMessage(body)), nil
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("freedict: unexpected status %d", resp.StatusCode)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("freedict: decode json: %w", err)
	}

	result := mapAPIResponse(word, entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", resp.StatusCode),
		slog.Int("definitions", len(result.Definitions)),
	)

	return result, nil
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (p *Provider) doWithRetry(ctx context.Context, req *http.Request, word string) (*http.Response, error) {
	resp, err := p.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	// Don't retry if context is already cancelled.
	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	p.log.WarnContext(ctx, "freedict retry", slog.String("word", word), slog.String("reason", reason))

	// Close body from the failed attempt before retrying.
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	timer := time.NewTimer(p.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
	}

	return p.httpClient.Do(req)
}

// mapAPIResponse converts the API entries into a provider.LookupResult.
// Multiple entries (different etymologies) are merged: definitions are
// concatenated in API order, the part of speech becomes the definition type.
func mapAPIResponse(word string, entries []apiEntry) *provider.LookupResult {
	result := &provider.LookupResult{
		Word:        word,
		Found:       true,
		Definitions: []provider.DefinitionResult{},
	}

	if len(entries) == 0 {
		return result
	}

	if entries[0].Word != "" {
		result.Word = entries[0].Word
	}
	result.Pronunciation = firstPronunciation(entries)

	for _, entry := range entries {
		for _, meaning := range entry.Meanings {
			for _, def := range meaning.Definitions {
				if strings.TrimSpace(def.Definition) == "" {
					continue
				}
				result.Definitions = append(result.Definitions, provider.DefinitionResult{
					Type:       meaning.PartOfSpeech,
					Definition: def.Definition,
					Example:    def.Example,
				})
			}
		}
	}

	return result
}

// firstPronunciation returns the first non-empty transcription, preferring
// the entry-level phonetic over the per-recording ones.
func firstPronunciation(entries []apiEntry) string {
	for _, entry := range entries {
		if entry.Phonetic != "" {
			return entry.Phonetic
		}
		for _, ph := range entry.Phonetics {
			if ph.Text != "" {
				return ph.Text
			}
		}
	}
	return ""
}

func notFoundMessage(body []byte) string {
	var nf apiNotFound
	if err := json.Unmarshal(body, &nf); err != nil {
		return ""
	}
	if nf.Message != "" {
		return nf.Message
	}
	return nf.Title
}
