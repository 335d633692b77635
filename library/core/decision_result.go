package core

// DecisionResult is the outcome of a pure Decide function in a command feature.
//
// Construct it only with IdempotentDecision, SuccessDecision or ErrorDecision.
type DecisionResult struct {
	Outcome  string   // "idempotent", "success", or "error"
	BookCopy BookCopy // the changed copy, only set for success
	Err      error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision means the copy is already in the requested state.
func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: idempotentOutcome}
}

// SuccessDecision carries the changed copy that must be stored.
func SuccessDecision(bookCopy BookCopy) DecisionResult {
	return DecisionResult{Outcome: successOutcome, BookCopy: bookCopy}
}

// ErrorDecision means a business rule was violated, nothing is stored.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{Outcome: errorOutcome, Err: err}
}

// HasChangeToStore returns true if the decision produced a changed copy.
func (r DecisionResult) HasChangeToStore() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent returns true if nothing had to change.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the error if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
