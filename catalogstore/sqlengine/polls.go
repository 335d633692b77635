package sqlengine

import (
	"context"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine/internal/adapters"
)

// CreateQuestion inserts a question together with the choices it carries.
func (e *Engine) CreateQuestion(ctx context.Context, question catalogstore.StorableQuestion) error {
	op, ctx := e.startOperation(ctx, operationCreateQuestion, map[string]string{logAttrRecordID: question.QuestionID})

	rowsAffected, err := e.insert(ctx, op, e.dialect.Insert(e.table(tableQuestions)).Rows(goqu.Record{
		"question_id":   question.QuestionID,
		"question_text": question.Text,
		"pub_date":      formatTimestamp(question.PubDate),
	}))
	if err != nil {
		return err
	}

	if len(question.Choices) > 0 {
		records := make([]any, 0, len(question.Choices))
		for _, choice := range question.Choices {
			choice.QuestionID = question.QuestionID
			records = append(records, choiceRecord(choice))
		}

		inserted, insertErr := e.insert(ctx, op, e.dialect.Insert(e.table(tableChoices)).Rows(records...))
		if insertErr != nil {
			return insertErr
		}

		rowsAffected += inserted
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

// CreateChoice adds a choice to an existing question.
func (e *Engine) CreateChoice(ctx context.Context, choice catalogstore.StorableChoice) error {
	op, ctx := e.startOperation(ctx, operationCreateChoice, map[string]string{logAttrRecordID: choice.ChoiceID})

	rowsAffected, err := e.insert(ctx, op, e.dialect.Insert(e.table(tableChoices)).Rows(choiceRecord(choice)))
	if err != nil {
		return err
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

// GetQuestion returns the question with its choices, regardless of its publication date.
func (e *Engine) GetQuestion(ctx context.Context, questionID string) (catalogstore.StorableQuestion, error) {
	op, ctx := e.startOperation(ctx, operationGetQuestion, map[string]string{logAttrRecordID: questionID})

	stmt := e.dialect.From(e.table(tableQuestions)).
		Select("question_id", "question_text", "pub_date").
		Where(goqu.C("question_id").Eq(questionID))

	question, err := selectOne(ctx, e, op, stmt, scanQuestion)
	if err != nil {
		return catalogstore.StorableQuestion{}, err
	}

	questions, err := e.withChoices(ctx, op, []catalogstore.StorableQuestion{question})
	if err != nil {
		return catalogstore.StorableQuestion{}, err
	}

	op.finishSuccess(1)

	return questions[0], nil
}

// QueryPublishedQuestions returns questions published at or before until that have at least one choice,
// newest first. A zero limit returns all of them.
func (e *Engine) QueryPublishedQuestions(
	ctx context.Context,
	until time.Time,
	limit uint,
) ([]catalogstore.StorableQuestion, error) {

	op, ctx := e.startOperation(ctx, operationPublishedQuestion, nil)

	withChoices := e.dialect.From(e.table(tableChoices)).Select("question_id")

	stmt := e.dialect.From(e.table(tableQuestions)).
		Select("question_id", "question_text", "pub_date").
		Where(
			goqu.C("pub_date").Lte(formatTimestamp(until)),
			goqu.C("question_id").In(withChoices),
		).
		Order(goqu.C("pub_date").Desc(), goqu.C("question_id").Asc())
	stmt = withPage(stmt, catalogstore.Page{Limit: limit})

	questions, err := selectAll(ctx, e, op, stmt, scanQuestion)
	if err != nil {
		return nil, err
	}

	if questions, err = e.withChoices(ctx, op, questions); err != nil {
		return nil, err
	}

	op.finishSuccess(len(questions))

	return questions, nil
}

// IncrementChoiceVotes adds one vote to the choice in a single statement.
// It fails with catalogstore.ErrNotFound if the choice doesn't belong to the question.
func (e *Engine) IncrementChoiceVotes(ctx context.Context, questionID string, choiceID string) error {
	op, ctx := e.startOperation(ctx, operationIncrementVotes, map[string]string{logAttrRecordID: choiceID})

	stmt := e.dialect.Update(e.table(tableChoices)).
		Set(goqu.Record{"votes": goqu.L("votes + 1")}).
		Where(
			goqu.C("choice_id").Eq(choiceID),
			goqu.C("question_id").Eq(questionID),
		)

	sqlQuery, err := e.toSQL(ctx, op, stmt)
	if err != nil {
		return err
	}

	rowsAffected, err := e.exec(ctx, op, sqlQuery)
	if err != nil {
		return err
	}

	if rowsAffected < 1 {
		return e.notFound(op)
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

func (e *Engine) withChoices(
	ctx context.Context,
	op *operation,
	questions []catalogstore.StorableQuestion,
) ([]catalogstore.StorableQuestion, error) {

	if len(questions) == 0 {
		return questions, nil
	}

	questionIDs := make([]any, 0, len(questions))
	for _, question := range questions {
		questionIDs = append(questionIDs, question.QuestionID)
	}

	stmt := e.dialect.From(e.table(tableChoices)).
		Select("choice_id", "question_id", "choice_text", "votes").
		Where(goqu.C("question_id").In(questionIDs...)).
		Order(goqu.C("choice_text").Asc(), goqu.C("choice_id").Asc())

	choices, err := selectAll(ctx, e, op, stmt, func(rows adapters.DBRows) (catalogstore.StorableChoice, error) {
		var (
			choice catalogstore.StorableChoice
			votes  int64
		)
		err := rows.Scan(&choice.ChoiceID, &choice.QuestionID, &choice.Text, &votes)
		choice.Votes = int(votes)

		return choice, err
	})
	if err != nil {
		return nil, err
	}

	byQuestion := make(map[string][]catalogstore.StorableChoice, len(questions))
	for _, choice := range choices {
		byQuestion[choice.QuestionID] = append(byQuestion[choice.QuestionID], choice)
	}

	for i := range questions {
		questions[i].Choices = byQuestion[questions[i].QuestionID]
	}

	return questions, nil
}

func choiceRecord(choice catalogstore.StorableChoice) goqu.Record {
	return goqu.Record{
		"choice_id":   choice.ChoiceID,
		"question_id": choice.QuestionID,
		"choice_text": choice.Text,
		"votes":       choice.Votes,
	}
}

func scanQuestion(rows adapters.DBRows) (catalogstore.StorableQuestion, error) {
	var (
		question catalogstore.StorableQuestion
		pubDate  nullTimestamp
	)

	if err := rows.Scan(&question.QuestionID, &question.Text, &pubDate); err != nil {
		return catalogstore.StorableQuestion{}, err
	}

	question.PubDate = pubDate.Time

	return question, nil
}
