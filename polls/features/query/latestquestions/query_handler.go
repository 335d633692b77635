package latestquestions

import (
	"context"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/polls/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	QueryPublishedQuestions(ctx context.Context, until time.Time, limit uint) ([]catalogstore.StorableQuestion, error)
}

// QueryHandler lists the latest published questions.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns the latest questions that have at least one choice. Future questions are never listed.
func (h QueryHandler) Handle(ctx context.Context, query Query) (LatestQuestions, error) {
	ctx = catalogstore.WithEventualConsistency(ctx)

	storables, err := h.store.QueryPublishedQuestions(ctx, query.Now, core.LatestQuestionsLimit)
	if err != nil {
		return LatestQuestions{}, err
	}

	latest := core.LatestQuestions(shell.QuestionsFrom(storables), query.Now, core.LatestQuestionsLimit)

	items := make([]QuestionItem, 0, len(latest))
	for _, question := range latest {
		items = append(items, QuestionItem{
			QuestionID:        question.QuestionID,
			Text:              question.Text,
			PubDate:           question.PubDate,
			PublishedRecently: question.WasPublishedRecently(query.Now),
		})
	}

	return LatestQuestions{Questions: items}, nil
}
