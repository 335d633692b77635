package questiondetail_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/polls/core"
	"github.com/AntonStoeckl/library-catalog-go/polls/features/query/questiondetail"
	. "github.com/AntonStoeckl/library-catalog-go/testutil/helper" //nolint:revive
)

func Test_QueryHandler_Handle_ShowsResults(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)
	handler := questiondetail.NewQueryHandler(engine)

	// arrange
	question := GivenQuestion(t, ctx, engine, "What's up?", FixtureClock(), "The sky", "Not much")
	require.NoError(t, engine.IncrementChoiceVotes(ctx, question.QuestionID, question.Choices[0].ChoiceID))
	require.NoError(t, engine.IncrementChoiceVotes(ctx, question.QuestionID, question.Choices[1].ChoiceID))
	require.NoError(t, engine.IncrementChoiceVotes(ctx, question.QuestionID, question.Choices[1].ChoiceID))

	// act
	result, err := handler.Handle(ctx, questiondetail.BuildQuery(question.QuestionID, FixtureClock()))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.TotalVotes)
	require.Len(t, result.Question.Choices, 2)
	assert.Equal(t, "Not much", result.Question.Choices[0].Text)
	assert.Equal(t, 2, result.Question.Choices[0].Votes)
	assert.Equal(t, "The sky", result.Question.Choices[1].Text)
}

func Test_QueryHandler_Handle_HidesFutureAndUnknownQuestions(t *testing.T) {
	// setup
	ctx := context.Background()
	engine := NewEngine(t)
	handler := questiondetail.NewQueryHandler(engine)

	// arrange
	future := GivenQuestion(t, ctx, engine, "What's next?", FixtureClock().Add(time.Hour), "Nothing")

	for _, questionID := range []string{future.QuestionID, uuid.NewString()} {
		// act
		_, err := handler.Handle(ctx, questiondetail.BuildQuery(questionID, FixtureClock()))

		// assert
		assert.ErrorIs(t, err, core.ErrQuestionNotFound)
	}
}
