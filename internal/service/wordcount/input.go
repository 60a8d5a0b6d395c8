package wordcount

import (
	"fmt"

	"github.com/heartmarshall/wordcount-backend/internal/domain"
)

// DefaultLimit is the number of ranked words enriched when the caller does
// not ask for a specific amount.
const DefaultLimit = 10

// ProcessInput holds the parameters for counting and enriching a text.
type ProcessInput struct {
	Text  string
	Limit int
}

// Validate checks all fields and collects all errors. Empty text is not
// rejected here: Process reports it as domain.ErrNoWords. A non-positive
// limit is clamped to 1 by Process.
func (i ProcessInput) Validate(maxLimit int) error {
	var errs []domain.FieldError

	if maxLimit > 0 && i.Limit > maxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: fmt.Sprintf("max %d", maxLimit)})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
