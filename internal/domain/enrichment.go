package domain

// LookupStatus is the terminal state of a single word lookup.
type LookupStatus string

const (
	LookupStatusFound    LookupStatus = "found"
	LookupStatusNotFound LookupStatus = "not_found"
	LookupStatusFailed   LookupStatus = "failed"
)

func (s LookupStatus) String() string { return string(s) }

// Outcome is the tagged result of resolving one word against the dictionary.
// Exactly one of the payload fields is meaningful, selected by Status:
// Definitions for found, Message for not_found, Err for failed.
type Outcome struct {
	Status      LookupStatus
	Definitions []Definition
	Message     string
	Err         error
}

// Found returns a found outcome. A nil slice is replaced with an empty one.
func Found(defs []Definition) Outcome {
	if defs == nil {
		defs = []Definition{}
	}
	return Outcome{Status: LookupStatusFound, Definitions: defs}
}

// NotFound returns a not-found outcome carrying the provider's message.
func NotFound(message string) Outcome {
	return Outcome{Status: LookupStatusNotFound, Message: message}
}

// Failed returns a failed outcome caused by err.
func Failed(err error) Outcome {
	return Outcome{Status: LookupStatusFailed, Err: err}
}

// IsTerminalSuccess reports whether the lookup completed without a fault.
func (o Outcome) IsTerminalSuccess() bool {
	return o.Status == LookupStatusFound || o.Status == LookupStatusNotFound
}

// WordOutcome pairs a ranked word with the outcome of its lookup.
type WordOutcome struct {
	RankedWord
	Outcome Outcome
}
