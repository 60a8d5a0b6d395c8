// Package wordcount counts the words of a text and enriches the most frequent
// ones with dictionary definitions.
package wordcount

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/wordcount-backend/internal/domain"
	"github.com/heartmarshall/wordcount-backend/internal/textstat"
)

// Config holds the limits the service enforces.
type Config struct {
	// MaxLimit rejects requests for more ranked words. Zero disables the check.
	MaxLimit int
	// MaxConcurrent caps lookups in flight per request. Zero means one per word.
	MaxConcurrent int
}

// Service implements the word count pipeline: count, rank, enrich, assemble.
type Service struct {
	log      *slog.Logger
	enricher *Enricher
	maxLimit int
}

// NewService creates a new word count service.
func NewService(logger *slog.Logger, dict dictionary, cfg Config) *Service {
	log := logger.With("service", "wordcount")
	return &Service{
		log:      log,
		enricher: NewEnricher(log, dict, cfg.MaxConcurrent),
		maxLimit: cfg.MaxLimit,
	}
}

// Process counts the words of input.Text, ranks them and looks up the top
// input.Limit words. Text without any letters fails with domain.ErrNoWords
// before any lookup is made. Lookup faults and cancellation do not fail the
// call: affected words come back with no definitions and Result.Report says
// what happened.
func (s *Service) Process(ctx context.Context, input ProcessInput) (*Result, error) {
	if err := input.Validate(s.maxLimit); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit < 1 {
		s.log.WarnContext(ctx, "non-positive limit, using 1", slog.Int("limit", limit))
		limit = 1
	}

	table := textstat.Count(input.Text)
	if table.Len() == 0 {
		return nil, domain.ErrNoWords
	}

	ranked := textstat.Rank(table, limit)
	outcomes, report := s.enricher.Enrich(ctx, ranked)
	words := Assemble(outcomes)

	s.log.InfoContext(ctx, "text processed",
		slog.Int("tokens", table.Total()),
		slog.Int("distinct", table.Len()),
		slog.Int("ranked", len(ranked)),
		slog.Int("found", report.Found),
		slog.Int("not_found", report.NotFound),
		slog.Int("failed", report.Failed),
		slog.String("status", report.Status()),
	)

	return &Result{
		Words:         words,
		TotalWords:    table.Total(),
		DistinctWords: table.Len(),
		Report:        report,
	}, nil
}
