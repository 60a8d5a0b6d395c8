package owlbot

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
	defaultBaseURL    = "https://owlbot.info/api/v4/dictionary"
	defaultTimeout    = 10 * time.Second
	defaultRetryDelay = 500 * time.Millisecond
)

// Name identifies this provider in configuration and cache keys.
const Name = "owlbot"

// Provider fetches definitions from the Owlbot dictionary API.
type Provider struct {
	baseURL    string
	token      string
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

// NewProvider creates a Provider with the default Owlbot API URL.
func NewProvider(token string, logger *slog.Logger, opts ...Option) *Provider {
	return NewProviderWithURL(defaultBaseURL, token, logger, opts...)
}

// NewProviderWithURL creates a Provider with a custom base URL (for testing).
func NewProviderWithURL(baseURL, token string, logger *slog.Logger, opts ...Option) *Provider {
	p := &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
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
// HTTP 404 is not an error: it yields a result with Found == false and the
// message Owlbot sent. Any other non-200 status is returned as an error.
func (p *Provider) Lookup(ctx context.Context, word string) (*provider.LookupResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("owlbot: %w", err)
	}

	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "owlbot request", slog.String("word", word))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("owlbot: create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+p.token)
	req.Header.Set("Accept", "application/json")

	resp, err := p.doWithRetry(ctx, req, word)
	if err != nil {
		p.log.ErrorContext(ctx, "owlbot request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("owlbot: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("owlbot: read body: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		message := notFoundMessage(body)
		p.log.DebugContext(ctx, "owlbot word not found", slog.String("word", word), slog.String("message", message))
		return provider.NotFound(word, message), nil
	default:
		return nil, fmt.Errorf("owlbot: unexpected status %d", resp.StatusCode)
	}

	var entry apiEntry
	if err := json.Unmarshal(body, &entry); err != nil {
		return nil, fmt.Errorf("owlbot: decode json: %w", err)
	}

	result := mapAPIResponse(word, entry)

	p.log.DebugContext(ctx, "owlbot response",
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
	p.log.WarnContext(ctx, "owlbot retry", slog.String("word", word), slog.String("reason", reason))

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

// mapAPIResponse converts the API entry into a provider.LookupResult.
// Definitions without any text are dropped.
func mapAPIResponse(word string, entry apiEntry) *provider.LookupResult {
	result := &provider.LookupResult{
		Word:          entry.Word,
		Found:         true,
		Pronunciation: entry.Pronunciation,
		Definitions:   make([]provider.DefinitionResult, 0, len(entry.Definitions)),
	}
	if result.Word == "" {
		result.Word = word
	}

	for _, d := range entry.Definitions {
		if strings.TrimSpace(d.Definition) == "" {
			continue
		}
		result.Definitions = append(result.Definitions, provider.DefinitionResult{
			Type:       d.Type,
			Definition: d.Definition,
			Example:    d.Example,
			Emoji:      d.Emoji,
			ImageURL:   d.ImageURL,
		})
	}

	return result
}

// notFoundMessage extracts the first message from a 404 body. An unreadable
// body is not an error: the word is still reported as not found.
func notFoundMessage(body []byte) string {
	var msgs []apiMessage
	if err := json.Unmarshal(body, &msgs); err != nil || len(msgs) == 0 {
		return ""
	}
	return msgs[0].Message
}
