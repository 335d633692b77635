package questiondetail

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/polls/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	GetQuestion(ctx context.Context, questionID string) (catalogstore.StorableQuestion, error)
}

// QueryHandler shows one question with its results.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle fails with core.ErrQuestionNotFound for unknown and unpublished questions.
func (h QueryHandler) Handle(ctx context.Context, query Query) (QuestionDetail, error) {
	storable, err := h.store.GetQuestion(catalogstore.WithEventualConsistency(ctx), query.QuestionID)
	if errors.Is(err, catalogstore.ErrNotFound) {
		return QuestionDetail{}, core.ErrQuestionNotFound
	}

	if err != nil {
		return QuestionDetail{}, err
	}

	question, err := shell.QuestionFrom(storable).VisibleAt(query.Now)
	if err != nil {
		return QuestionDetail{}, err
	}

	return QuestionDetail{
		Question:   question,
		TotalVotes: question.TotalVotes(),
	}, nil
}
