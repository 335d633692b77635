package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-catalog-go/polls/core"
	"github.com/AntonStoeckl/library-catalog-go/polls/features/command/vote"
	"github.com/AntonStoeckl/library-catalog-go/polls/features/query/latestquestions"
	"github.com/AntonStoeckl/library-catalog-go/polls/features/query/questiondetail"
)

const timestampLayout = "2006-01-02 15:04"

func newPollsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "polls",
		Short: "Show polls and vote",
	}

	cmd.AddCommand(newPollsListCommand(a), newPollsShowCommand(a), newPollsVoteCommand(a))

	return cmd
}

func newPollsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the latest published questions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			latest, err := runQuery(cmd.Context(), a, latestquestions.NewQueryHandler(a.engine), latestquestions.BuildQuery(a.now()))
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(latest.Questions))
			for _, question := range latest.Questions {
				rows = append(rows, []string{
					question.QuestionID,
					question.Text,
					question.PubDate.Format(timestampLayout),
					formatBool(question.PublishedRecently),
				})
			}

			return a.render(view{
				value:   latest,
				headers: []string{"ID", "Question", "Published", "New"},
				rows:    rows,
			})
		},
	}
}

func newPollsShowCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <question-id>",
		Short: "Show a question with its results",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := questiondetail.BuildQuery(args[0], a.now())

			detail, err := runQuery(cmd.Context(), a, questiondetail.NewQueryHandler(a.engine), query)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(detail.Question.Choices))
			for _, choice := range detail.Question.Choices {
				rows = append(rows, []string{choice.ChoiceID, choice.Text, itoa(choice.Votes)})
			}

			return a.render(view{
				value:   detail,
				title:   detail.Question.Text,
				headers: []string{"Choice", "Text", "Votes"},
				rows:    rows,
				footer:  fmt.Sprintf("%d vote(s)", detail.TotalVotes),
			})
		},
	}
}

func newPollsVoteCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "vote <question-id> <choice-id>",
		Short: "Vote for a choice of a question",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			questionID, err := uuid.Parse(args[0])
			if err != nil {
				return errors.Join(core.ErrQuestionNotFound, err)
			}

			handler := vote.NewCommandHandler(a.engine)

			return runCommand(cmd.Context(), a, handler, vote.BuildCommand(questionID, args[1], a.now()))
		},
	}
}
