package catalogstore

import "time"

// StorableQuestion is the DTO for a poll question including its choices.
type StorableQuestion struct {
	QuestionID string
	Text       string
	PubDate    time.Time
	Choices    []StorableChoice
}

// StorableChoice is the DTO for one answer option of a poll question.
type StorableChoice struct {
	ChoiceID   string
	QuestionID string
	Text       string
	Votes      int
}
