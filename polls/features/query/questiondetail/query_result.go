package questiondetail

import (
	"github.com/AntonStoeckl/library-catalog-go/polls/core"
)

// QuestionDetail is a published question with its choices ordered by text.
type QuestionDetail struct {
	Question   core.Question
	TotalVotes int
}
