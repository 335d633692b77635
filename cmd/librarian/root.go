package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errUnknownOutput = errors.New("unknown output format")

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "librarian",
		Short:         "Manage the catalog, loans and polls of a library",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if a.output != outputTable && a.output != outputJSON {
				return fmt.Errorf("%w: %q", errUnknownOutput, a.output)
			}

			return a.open(cmd.Context())
		},
	}

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to the YAML config file")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputTable, "output format: table or json")

	root.AddCommand(
		newMigrateCommand(a),
		newSeedCommand(a),
		newSummaryCommand(a),
		newBooksCommand(a),
		newBookCommand(a),
		newAuthorsCommand(a),
		newAuthorCommand(a),
		newGenresCommand(a),
		newLanguagesCommand(a),
		newCopyCommand(a),
		newLoansCommand(a),
		newPollsCommand(a),
	)

	return root
}

func newMigrateCommand(a *app) *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			if reset {
				if err := a.engine.DropSchema(ctx); err != nil {
					return err
				}
			}

			if err := a.engine.Migrate(ctx); err != nil {
				return err
			}

			return a.render(view{
				value:  map[string]any{"migrated": true, "reset": reset, "dialect": a.engine.Dialect()},
				footer: "schema is up to date (" + a.engine.Dialect() + ")",
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop all tables before migrating")

	return cmd
}

// pageFlag registers --page with a default of 1.
func pageFlag(cmd *cobra.Command) *uint {
	page := new(uint)
	cmd.Flags().UintVarP(page, "page", "p", 1, "page number, starting at 1")

	return page
}
