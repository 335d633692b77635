package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/authordetail"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/authorlist"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/bookdetail"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/booklist"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/catalogsummary"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/genrelist"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/languagelist"
)

// catalogCounts is the summary without the visit count, a CLI run is always the first visit.
type catalogCounts struct {
	NumBooks           int
	NumAuthors         int
	NumGenres          int
	NumLanguages       int
	NumCopies          int
	NumCopiesAvailable int
}

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the catalog counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			summary, err := runQuery(cmd.Context(), a, catalogsummary.NewQueryHandler(a.engine), catalogsummary.BuildQuery())
			if err != nil {
				return err
			}

			return a.render(view{
				value: catalogCounts{
					NumBooks:           summary.NumBooks,
					NumAuthors:         summary.NumAuthors,
					NumGenres:          summary.NumGenres,
					NumLanguages:       summary.NumLanguages,
					NumCopies:          summary.NumCopies,
					NumCopiesAvailable: summary.NumCopiesAvailable,
				},
				title:   "Catalog",
				headers: []string{"Books", "Authors", "Genres", "Languages", "Copies", "Available"},
				rows: [][]string{{
					itoa(summary.NumBooks),
					itoa(summary.NumAuthors),
					itoa(summary.NumGenres),
					itoa(summary.NumLanguages),
					itoa(summary.NumCopies),
					itoa(summary.NumCopiesAvailable),
				}},
			})
		},
	}
}

func newBooksCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List the books of the catalog",
		Args:  cobra.NoArgs,
	}
	page := pageFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		list, err := runQuery(cmd.Context(), a, booklist.NewQueryHandler(a.engine), booklist.BuildQuery(*page))
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(list.Books))
		for _, book := range list.Books {
			rows = append(rows, []string{book.ISBN, book.Display})
		}

		return a.render(view{
			value:   list,
			headers: []string{"ISBN", "Book"},
			rows:    rows,
			footer:  pageFooter(list.Page),
		})
	}

	return cmd
}

func newBookCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "book <isbn>",
		Short: "Show a book with its copies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := runQuery(cmd.Context(), a, bookdetail.NewQueryHandler(a.engine), bookdetail.BuildQuery(args[0]))
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(detail.Copies))
			for _, bookCopy := range detail.Copies {
				rows = append(rows, []string{
					bookCopy.CopyID,
					bookCopy.Imprint,
					bookCopy.Status.Label(),
					formatDate(bookCopy.DueBack),
				})
			}

			now := a.now()

			return a.render(view{
				value:   detail,
				title:   detail.Display,
				headers: []string{"Copy", "Imprint", "Status", "Due back"},
				rows:    rows,
				highlight: func(row int) bool {
					return detail.Copies[row].IsOverdue(now)
				},
				footer: strings.Join([]string{
					"Genre: " + detail.Genre,
					"Language: " + detail.Language,
					"Available: " + itoa(detail.NumAvailable),
				}, "\n"),
			})
		},
	}
}

func newAuthorsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "List the authors",
		Args:  cobra.NoArgs,
	}
	page := pageFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		list, err := runQuery(cmd.Context(), a, authorlist.NewQueryHandler(a.engine), authorlist.BuildQuery(*page))
		if err != nil {
			return err
		}

		return a.render(view{
			value:   list,
			headers: []string{"ID", "Name", "Born", "Died"},
			rows:    authorRows(list.Authors),
			footer:  pageFooter(list.Page),
		})
	}

	return cmd
}

func newAuthorCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "author <id>",
		Short: "Show an author with their books",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := runQuery(cmd.Context(), a, authordetail.NewQueryHandler(a.engine), authordetail.BuildQuery(args[0]))
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(detail.Books))
			for _, book := range detail.Books {
				rows = append(rows, []string{book.ISBN, book.Title, formatDate(book.PubDate)})
			}

			return a.render(view{
				value:   detail,
				title:   detail.Author.Name,
				headers: []string{"ISBN", "Title", "Published"},
				rows:    rows,
			})
		},
	}
}

func newGenresCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "List the genres",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			genres, err := runQuery(cmd.Context(), a, genrelist.NewQueryHandler(a.engine), genrelist.BuildQuery())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(genres))
			for _, genre := range genres {
				rows = append(rows, []string{genre.GenreID, genre.Name})
			}

			return a.render(view{value: genres, headers: []string{"ID", "Genre"}, rows: rows})
		},
	}
}

func newLanguagesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			languages, err := runQuery(cmd.Context(), a, languagelist.NewQueryHandler(a.engine), languagelist.BuildQuery())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(languages))
			for _, language := range languages {
				rows = append(rows, []string{language.LanguageID, language.Name})
			}

			return a.render(view{value: languages, headers: []string{"ID", "Language"}, rows: rows})
		},
	}
}

func authorRows(authors []core.Author) [][]string {
	rows := make([][]string, 0, len(authors))
	for _, author := range authors {
		rows = append(rows, []string{author.AuthorID, author.Name, formatDate(author.BirthDate), formatDate(author.DeathDate)})
	}

	return rows
}
