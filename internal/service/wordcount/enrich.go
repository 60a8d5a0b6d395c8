package wordcount

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wordcount-backend/internal/domain"
	"github.com/heartmarshall/wordcount-backend/internal/provider"
)

type dictionary interface {
	Lookup(ctx context.Context, word string) (*provider.LookupResult, error)
}

// Enricher looks up every ranked word concurrently.
//
// All lookups of a batch share one context. The first lookup that fails
// cancels that context: lookups that have not started are skipped and
// in-flight ones unwind. Outcomes that completed before the fault are kept.
// A word that is not found is a normal outcome and cancels nothing.
type Enricher struct {
	log           *slog.Logger
	dict          dictionary
	maxConcurrent int
}

// NewEnricher creates an Enricher. maxConcurrent caps the number of lookups
// in flight; zero or less starts one goroutine per word.
func NewEnricher(logger *slog.Logger, dict dictionary, maxConcurrent int) *Enricher {
	return &Enricher{
		log:           logger.With("component", "enricher"),
		dict:          dict,
		maxConcurrent: maxConcurrent,
	}
}

// lookupError tags a lookup error with the position of its word. fault is
// set when the caller's context was still live when the lookup failed.
type lookupError struct {
	index int
	word  string
	err   error
	fault bool
}

func (e *lookupError) Error() string { return fmt.Sprintf("lookup %q: %v", e.word, e.err) }
func (e *lookupError) Unwrap() error { return e.err }

// Enrich returns one outcome per word, in the order of words. It returns only
// after every lookup it started has returned. It never fails as a whole:
// faults and cancellation are reported per word and in the report.
func (e *Enricher) Enrich(ctx context.Context, words []domain.RankedWord) ([]domain.WordOutcome, EnrichReport) {
	results := make([]domain.WordOutcome, len(words))
	for i, w := range words {
		results[i] = domain.WordOutcome{RankedWord: w}
	}

	g, gctx := errgroup.WithContext(ctx)
	if e.maxConcurrent > 0 {
		g.SetLimit(e.maxConcurrent)
	}

	for i, w := range words {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			res, err := e.dict.Lookup(gctx, w.Word)
			if err != nil {
				results[i].Outcome = domain.Failed(err)
				return &lookupError{index: i, word: w.Word, err: err, fault: ctx.Err() == nil}
			}
			results[i].Outcome = toOutcome(res)
			return nil
		})
	}

	firstErr := g.Wait()

	var report EnrichReport
	if !allSettled(results) {
		report = e.settle(ctx, gctx, results, firstErr)
	}

	for _, r := range results {
		switch r.Outcome.Status {
		case domain.LookupStatusFound:
			report.Found++
		case domain.LookupStatusNotFound:
			report.NotFound++
		default:
			report.Failed++
		}
	}

	return results, report
}

func allSettled(results []domain.WordOutcome) bool {
	for _, r := range results {
		if !r.Outcome.IsTerminalSuccess() {
			return false
		}
	}
	return true
}

// settle marks every word without a successful outcome as failed once the
// batch was cut short. The word that caused the fault keeps its own error;
// all others are marked with domain.ErrEnrichmentAborted. A fault that came
// first classifies the batch as aborted even if the caller cancels later.
func (e *Enricher) settle(ctx, gctx context.Context, results []domain.WordOutcome, firstErr error) EnrichReport {
	var report EnrichReport

	faultIdx := -1
	var le *lookupError
	switch {
	case errors.As(firstErr, &le) && le.fault:
		report.Aborted = true
		report.Cause = le.err
		faultIdx = le.index
	case ctx.Err() != nil:
		report.Canceled = true
		report.Cause = context.Cause(ctx)
	default:
		report.Aborted = true
		report.Cause = context.Cause(gctx)
	}

	skipped := 0
	for i := range results {
		o := results[i].Outcome
		if o.IsTerminalSuccess() || i == faultIdx {
			continue
		}
		cause := o.Err
		if cause == nil {
			cause = report.Cause
			skipped++
		}
		results[i].Outcome = domain.Failed(fmt.Errorf("%w: %w", domain.ErrEnrichmentAborted, cause))
	}

	attrs := []any{
		slog.Int("words", len(results)),
		slog.Int("skipped", skipped),
		slog.String("cause", fmt.Sprint(report.Cause)),
	}
	if faultIdx >= 0 {
		attrs = append(attrs, slog.String("word", results[faultIdx].Word))
	}
	if report.Canceled {
		e.log.WarnContext(ctx, "enrichment canceled by caller", attrs...)
	} else {
		e.log.WarnContext(ctx, "enrichment aborted after lookup fault", attrs...)
	}

	return report
}
