package core

import (
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	maxTextLength = 200

	// LatestQuestionsLimit is the number of questions on the index page.
	LatestQuestionsLimit = 5

	recentWindow = 24 * time.Hour
)

var (
	// ErrQuestionNotFound is returned for unknown and for not yet published questions.
	ErrQuestionNotFound = errors.New("question not found")

	// ErrNoChoiceSelected is returned when a vote names no choice or one of another question.
	ErrNoChoiceSelected = errors.New("You didn't select a choice.") //nolint:staticcheck // user-facing message

	// ErrInvalidText is returned for empty or too long question and choice texts.
	ErrInvalidText = errors.New("text must have between 1 and 200 characters")
)

// Question is a poll question that becomes visible at its publication date.
type Question struct {
	QuestionID string
	Text       string
	PubDate    time.Time
	Choices    []Choice
}

// Choice is one answer option of a question.
type Choice struct {
	ChoiceID   string
	QuestionID string
	Text       string
	Votes      int
}

// BuildQuestion validates and creates a Question without choices.
func BuildQuestion(questionID uuid.UUID, text string, pubDate time.Time) (Question, error) {
	if err := checkText(text); err != nil {
		return Question{}, err
	}

	return Question{
		QuestionID: questionID.String(),
		Text:       text,
		PubDate:    pubDate.UTC().Truncate(time.Microsecond),
	}, nil
}

// BuildChoice validates and creates a Choice with zero votes.
func BuildChoice(choiceID uuid.UUID, questionID string, text string) (Choice, error) {
	if err := checkText(text); err != nil {
		return Choice{}, err
	}

	return Choice{
		ChoiceID:   choiceID.String(),
		QuestionID: questionID,
		Text:       text,
	}, nil
}

func checkText(text string) error {
	if text == "" || utf8.RuneCountInString(text) > maxTextLength {
		return fmt.Errorf("%w: %q", ErrInvalidText, text)
	}

	return nil
}

// WasPublishedRecently reports whether the question was published within the last day.
// Questions with a publication date in the future were not.
func (q Question) WasPublishedRecently(now time.Time) bool {
	return !q.PubDate.Before(now.Add(-recentWindow)) && !q.PubDate.After(now)
}

// IsPublished reports whether the publication date has been reached.
func (q Question) IsPublished(now time.Time) bool {
	return !q.PubDate.After(now)
}

// Choice returns the choice with the given id.
func (q Question) Choice(choiceID string) (Choice, bool) {
	for _, choice := range q.Choices {
		if choice.ChoiceID == choiceID {
			return choice, true
		}
	}

	return Choice{}, false
}

// Vote adds one vote to the choice. An empty or foreign choice id fails with ErrNoChoiceSelected.
func (q Question) Vote(choiceID string) (Question, error) {
	if choiceID == "" {
		return q, ErrNoChoiceSelected
	}

	choices := make([]Choice, len(q.Choices))
	copy(choices, q.Choices)

	for i := range choices {
		if choices[i].ChoiceID == choiceID {
			choices[i].Votes++
			q.Choices = choices

			return q, nil
		}
	}

	return q, ErrNoChoiceSelected
}

// TotalVotes sums the votes of all choices.
func (q Question) TotalVotes() int {
	total := 0
	for _, choice := range q.Choices {
		total += choice.Votes
	}

	return total
}

// VisibleAt returns the question if it is published at now, ErrQuestionNotFound otherwise.
func (q Question) VisibleAt(now time.Time) (Question, error) {
	if !q.IsPublished(now) {
		return Question{}, ErrQuestionNotFound
	}

	return q, nil
}

// LatestQuestions keeps the published questions that have choices, newest first, at most limit.
func LatestQuestions(questions []Question, now time.Time, limit int) []Question {
	latest := make([]Question, 0, len(questions))
	for _, question := range questions {
		if question.IsPublished(now) && len(question.Choices) > 0 {
			latest = append(latest, question)
		}
	}

	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].PubDate.After(latest[j].PubDate)
	})

	if limit > 0 && len(latest) > limit {
		latest = latest[:limit]
	}

	return latest
}
