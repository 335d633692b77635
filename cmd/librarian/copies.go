package main

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/addbookcopy"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/changecopystatus"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/lendbookcopy"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/renewbookcopy"
	"github.com/AntonStoeckl/library-catalog-go/library/features/command/returnbookcopy"
)

var (
	errInvalidCopyID   = errors.New("invalid copy id")
	errUnknownBorrower = errors.New("unknown borrower")
)

func newCopyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Add, lend, renew and return book copies",
	}

	cmd.AddCommand(
		newCopyAddCommand(a),
		newCopyLendCommand(a),
		newCopyRenewCommand(a),
		newCopyReturnCommand(a),
		newCopyStatusCommand(a),
	)

	return cmd
}

func newCopyAddCommand(a *app) *cobra.Command {
	var (
		copyID  string
		imprint string
	)

	cmd := &cobra.Command{
		Use:   "add <isbn>",
		Short: "Add a copy of a book, it starts in maintenance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := uuid.New()
			if copyID != "" {
				parsed, err := parseCopyID(copyID)
				if err != nil {
					return err
				}
				id = parsed
			}

			command, err := addbookcopy.BuildCommand(id, args[0], imprint, a.now())
			if err != nil {
				return err
			}

			handler := addbookcopy.NewCommandHandler(a.engine, addbookcopy.WithRetryOptions(a.cfg.RetryOptions()...))
			if err = runCommand(cmd.Context(), a, handler, command); err != nil {
				return err
			}

			if a.output == outputTable {
				_, err = fmt.Fprintln(a.stdout, "copy id:", id.String())
			}

			return err
		},
	}

	cmd.Flags().StringVar(&copyID, "id", "", "copy id, generated if empty")
	cmd.Flags().StringVar(&imprint, "imprint", "", "imprint of the copy")

	return cmd
}

func newCopyLendCommand(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "lend <copy-id> <username>",
		Short: "Lend a copy to a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			copyID, err := parseCopyID(args[0])
			if err != nil {
				return err
			}

			borrowerID, err := a.borrowerID(cmd, args[1])
			if err != nil {
				return err
			}

			var period core.LoanPeriod
			if cmd.Flags().Changed("days") {
				if period, err = core.BuildLoanPeriod(days); err != nil {
					return err
				}
			}

			handler := lendbookcopy.NewCommandHandler(a.engine, lendbookcopy.WithRetryOptions(a.cfg.RetryOptions()...))

			return runCommand(cmd.Context(), a, handler, lendbookcopy.BuildCommand(copyID, borrowerID, period, a.now()))
		},
	}

	cmd.Flags().IntVar(&days, "days", core.DefaultLoanDays, "loan period in days")

	return cmd
}

func newCopyRenewCommand(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "renew <copy-id>",
		Short: "Extend a loan by 3, 7 or 14 days from now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			copyID, err := parseCopyID(args[0])
			if err != nil {
				return err
			}

			command, err := renewbookcopy.BuildCommand(copyID, days, a.now())
			if err != nil {
				return fmt.Errorf("%w %s", err, core.ExtensionHelpText)
			}

			handler := renewbookcopy.NewCommandHandler(a.engine, renewbookcopy.WithRetryOptions(a.cfg.RetryOptions()...))

			return runCommand(cmd.Context(), a, handler, command)
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "extension in days: 3, 7 or 14")

	return cmd
}

func newCopyReturnCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "return <copy-id>",
		Short: "Mark a copy on loan as returned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			copyID, err := parseCopyID(args[0])
			if err != nil {
				return err
			}

			handler := returnbookcopy.NewCommandHandler(a.engine, returnbookcopy.WithRetryOptions(a.cfg.RetryOptions()...))

			return runCommand(cmd.Context(), a, handler, returnbookcopy.BuildCommand(copyID, a.now()))
		},
	}
}

func newCopyStatusCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <copy-id> <m|a|r>",
		Short: "Set the status of a copy: m (maintenance), a (available) or r (reserved)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			copyID, err := parseCopyID(args[0])
			if err != nil {
				return err
			}

			command, err := changecopystatus.BuildCommand(copyID, args[1])
			if err != nil {
				return err
			}

			handler := changecopystatus.NewCommandHandler(a.engine, changecopystatus.WithRetryOptions(a.cfg.RetryOptions()...))

			return runCommand(cmd.Context(), a, handler, command)
		},
	}
}

func parseCopyID(value string) (uuid.UUID, error) {
	copyID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", errInvalidCopyID, value)
	}

	return copyID, nil
}

// borrowerID looks up a member by username.
func (a *app) borrowerID(cmd *cobra.Command, username string) (uuid.UUID, error) {
	borrower, err := a.engine.GetBorrowerByUsername(cmd.Context(), username)
	if errors.Is(err, catalogstore.ErrNotFound) {
		return uuid.Nil, fmt.Errorf("%w: %q", errUnknownBorrower, username)
	}
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(borrower.BorrowerID)
}
