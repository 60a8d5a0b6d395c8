package wordcount

import "github.com/heartmarshall/wordcount-backend/internal/domain"

// Result contains the enriched words of a processed text, in ranked order.
type Result struct {
	Words         []domain.EnrichedWord
	TotalWords    int
	DistinctWords int
	Report        EnrichReport
}

// EnrichReport summarizes the lookups of one batch.
type EnrichReport struct {
	Found    int
	NotFound int
	Failed   int

	// Aborted is set when a lookup fault cancelled the rest of the batch.
	Aborted bool
	// Canceled is set when the caller's context ended before every lookup
	// finished.
	Canceled bool
	// Cause is the first fault or the caller's cancellation cause.
	Cause error
}

// Status returns a short label for the batch: "complete", "aborted" or
// "canceled".
func (r EnrichReport) Status() string {
	switch {
	case r.Canceled:
		return "canceled"
	case r.Aborted:
		return "aborted"
	default:
		return "complete"
	}
}
