// Package vote implements the Vote use case of the polls app.
//
// Anyone may vote for a choice of a published question. The tally is incremented
// with a single atomic statement, so concurrent votes are never lost.
// An empty or foreign choice fails with core.ErrNoChoiceSelected, an unknown or unpublished
// question with core.ErrQuestionNotFound.
package vote
