package vote

import (
	"github.com/AntonStoeckl/library-catalog-go/polls/core"
)

// Decide implements the business logic of a vote and returns the question with the new tally.
//
// Business Rules:
//
//	GIVEN: a question published at OccurredAt with the chosen choice
//	WHEN: Vote is received
//	THEN: the choice has one more vote
//	ERROR: core.ErrQuestionNotFound if the question is not yet published
//	ERROR: core.ErrNoChoiceSelected if the choice is empty or belongs to another question
func Decide(question core.Question, command Command) (core.Question, error) {
	visible, err := question.VisibleAt(command.OccurredAt)
	if err != nil {
		return core.Question{}, err
	}

	return visible.Vote(command.ChoiceID)
}
