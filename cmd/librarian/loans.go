package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-catalog-go/library/features/query/allloanedbooks"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/loanedbooksbyborrower"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/loanview"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/memberloans"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/overduebooks"
)

func newLoansCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loans",
		Short: "List copies on loan",
	}

	cmd.AddCommand(
		newLoansMineCommand(a),
		newLoansAllCommand(a),
		newLoansOverdueCommand(a),
		newLoansMemberCommand(a),
	)

	return cmd
}

func newLoansMineCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List the copies on loan to the operator",
		Args:  cobra.NoArgs,
	}
	page := pageFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		query := loanedbooksbyborrower.BuildQuery(*page, a.now())

		loans, err := runQuery(cmd.Context(), a, loanedbooksbyborrower.NewQueryHandler(a.engine), query)
		if err != nil {
			return err
		}

		return a.render(loansView(loans, loans.Loans, false, pageFooter(loans.Page)))
	}

	return cmd
}

func newLoansAllCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "all",
		Short: "List all copies on loan, ordered by due date",
		Args:  cobra.NoArgs,
	}
	page := pageFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		query := allloanedbooks.BuildQuery(*page, a.now())

		loans, err := runQuery(cmd.Context(), a, allloanedbooks.NewQueryHandler(a.engine), query)
		if err != nil {
			return err
		}

		return a.render(loansView(loans, loans.Loans, true, pageFooter(loans.Page)))
	}

	return cmd
}

func newLoansOverdueCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "overdue",
		Short: "List the copies that are overdue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overdue, err := runQuery(cmd.Context(), a, overduebooks.NewQueryHandler(a.engine), overduebooks.BuildQuery(a.now()))
			if err != nil {
				return err
			}

			return a.render(loansView(overdue, overdue.Loans, true, fmt.Sprintf("%d overdue", overdue.Count)))
		},
	}
}

func newLoansMemberCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "member <username>",
		Short: "List the copies linked to a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := memberloans.BuildQuery(args[0], a.now())

			loans, err := runQuery(cmd.Context(), a, memberloans.NewQueryHandler(a.engine), query)
			if err != nil {
				return err
			}

			v := loansView(loans, loans.Loans, false, fmt.Sprintf("%d overdue", loans.OverdueCount))
			v.title = loans.Borrower.DisplayName + " (" + loans.Borrower.Username + ")"

			return a.render(v)
		},
	}
}

// loansView renders loan rows, overdue ones highlighted.
func loansView(value any, loans []loanview.LoanInfo, withBorrower bool, footer string) view {
	headers := []string{"Copy", "Title", "Status", "Loaned on", "Due back"}
	if withBorrower {
		headers = append(headers, "Borrower")
	}

	rows := make([][]string, 0, len(loans))
	for _, loan := range loans {
		row := []string{loan.CopyID, loan.Title, loan.Status.Label(), formatDate(loan.LoanedOn), formatDate(loan.DueBack)}
		if withBorrower {
			row = append(row, loan.BorrowerUsername)
		}

		rows = append(rows, row)
	}

	return view{
		value:   value,
		headers: headers,
		rows:    rows,
		highlight: func(row int) bool {
			return loans[row].Overdue
		},
		footer: footer,
	}
}
