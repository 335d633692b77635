package latestquestions

import "time"

// QuestionItem is one question on the index page.
type QuestionItem struct {
	QuestionID        string
	Text              string
	PubDate           time.Time
	PublishedRecently bool
}

// LatestQuestions holds at most core.LatestQuestionsLimit questions, newest first.
type LatestQuestions struct {
	Questions []QuestionItem
}
