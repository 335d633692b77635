package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	pollscore "github.com/AntonStoeckl/library-catalog-go/polls/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

var (
	errUnknownSeedFormat = errors.New("seed files must end in .yaml, .yml or .json")
	errInvalidSeedDate   = errors.New("invalid date")
)

// seedFile is the content of a YAML or JSON seed file. Empty ids are generated.
type seedFile struct {
	Genres    []seedCategory `yaml:"genres" json:"genres"`
	Languages []seedCategory `yaml:"languages" json:"languages"`
	Authors   []seedAuthor   `yaml:"authors" json:"authors"`
	Books     []seedBook     `yaml:"books" json:"books"`
	Borrowers []seedBorrower `yaml:"borrowers" json:"borrowers"`
	Copies    []seedCopy     `yaml:"copies" json:"copies"`
	Questions []seedQuestion `yaml:"questions" json:"questions"`
}

type seedCategory struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

type seedAuthor struct {
	ID        string `yaml:"id" json:"id"`
	Prefix    string `yaml:"prefix" json:"prefix"`
	FirstName string `yaml:"first_name" json:"first_name"`
	LastName  string `yaml:"last_name" json:"last_name"`
	Suffix    string `yaml:"suffix" json:"suffix"`
	BirthDate string `yaml:"birth_date" json:"birth_date"`
	DeathDate string `yaml:"death_date" json:"death_date"`
}

type seedBook struct {
	ISBN     string   `yaml:"isbn" json:"isbn"`
	Title    string   `yaml:"title" json:"title"`
	Summary  string   `yaml:"summary" json:"summary"`
	PubDate  string   `yaml:"pub_date" json:"pub_date"`
	Genre    string   `yaml:"genre" json:"genre"`
	Language string   `yaml:"language" json:"language"`
	Authors  []string `yaml:"authors" json:"authors"`
}

type seedBorrower struct {
	ID          string `yaml:"id" json:"id"`
	Username    string `yaml:"username" json:"username"`
	DisplayName string `yaml:"display_name" json:"display_name"`
}

type seedCopy struct {
	ID      string `yaml:"id" json:"id"`
	ISBN    string `yaml:"isbn" json:"isbn"`
	Imprint string `yaml:"imprint" json:"imprint"`
	Status  string `yaml:"status" json:"status"`
}

type seedQuestion struct {
	ID      string   `yaml:"id" json:"id"`
	Text    string   `yaml:"text" json:"text"`
	PubDate string   `yaml:"pub_date" json:"pub_date"`
	Choices []string `yaml:"choices" json:"choices"`
}

// seedCounts is what a seed run created.
type seedCounts struct {
	Genres    int `json:"genres"`
	Languages int `json:"languages"`
	Authors   int `json:"authors"`
	Books     int `json:"books"`
	Borrowers int `json:"borrowers"`
	Copies    int `json:"copies"`
	Questions int `json:"questions"`
}

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load genres, languages, authors, books, borrowers, copies and questions from a YAML or JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := readSeedFile(args[0])
			if err != nil {
				return err
			}

			counts, err := applySeed(cmd.Context(), a.engine, seed)
			if err != nil {
				return err
			}

			return a.render(view{
				value:   counts,
				title:   "Seeded",
				headers: []string{"Genres", "Languages", "Authors", "Books", "Borrowers", "Copies", "Questions"},
				rows: [][]string{{
					itoa(counts.Genres),
					itoa(counts.Languages),
					itoa(counts.Authors),
					itoa(counts.Books),
					itoa(counts.Borrowers),
					itoa(counts.Copies),
					itoa(counts.Questions),
				}},
			})
		},
	}
}

func readSeedFile(path string) (seedFile, error) {
	var seed seedFile

	var unmarshal func([]byte, any) error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	case ".json":
		unmarshal = json.Unmarshal
	default:
		return seed, fmt.Errorf("%w: %s", errUnknownSeedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return seed, err
	}

	if err = unmarshal(data, &seed); err != nil {
		return seed, fmt.Errorf("reading seed file %s: %w", path, err)
	}

	return seed, nil
}

// applySeed validates every record with the domain builders and writes it to the store.
// It stops at the first failure, records written until then are kept.
func applySeed(ctx context.Context, engine *sqlengine.Engine, seed seedFile) (seedCounts, error) {
	var counts seedCounts

	for _, s := range seed.Genres {
		genre, err := core.BuildGenre(s.ID, s.Name)
		if err != nil {
			return counts, err
		}

		if err = engine.CreateGenre(ctx, shell.StorableGenreFrom(genre)); err != nil {
			return counts, err
		}
		counts.Genres++
	}

	for _, s := range seed.Languages {
		language, err := core.BuildLanguage(s.ID, s.Name)
		if err != nil {
			return counts, err
		}

		if err = engine.CreateLanguage(ctx, shell.StorableLanguageFrom(language)); err != nil {
			return counts, err
		}
		counts.Languages++
	}

	for _, s := range seed.Authors {
		author, err := buildSeedAuthor(s)
		if err != nil {
			return counts, err
		}

		if err = engine.CreateAuthor(ctx, shell.StorableAuthorFrom(author)); err != nil {
			return counts, err
		}
		counts.Authors++
	}

	for _, s := range seed.Books {
		pubDate, err := parseSeedDate(s.PubDate)
		if err != nil {
			return counts, err
		}

		book, err := core.BuildBook(s.ISBN, s.Title, s.Summary, pubDate, s.Genre, s.Language, s.Authors)
		if err != nil {
			return counts, fmt.Errorf("book %q: %w", s.ISBN, err)
		}

		if err = engine.CreateBook(ctx, shell.StorableBookFrom(book)); err != nil {
			return counts, err
		}
		counts.Books++
	}

	for _, s := range seed.Borrowers {
		borrowerID, err := parseOrNewID(s.ID)
		if err != nil {
			return counts, err
		}

		borrower, err := core.BuildBorrower(borrowerID, s.Username, s.DisplayName)
		if err != nil {
			return counts, err
		}

		if err = engine.CreateBorrower(ctx, shell.StorableBorrowerFrom(borrower)); err != nil {
			return counts, err
		}
		counts.Borrowers++
	}

	for _, s := range seed.Copies {
		bookCopy, err := buildSeedCopy(s)
		if err != nil {
			return counts, err
		}

		storable, err := shell.StorableBookCopyFrom(bookCopy)
		if err != nil {
			return counts, err
		}

		if err = engine.CreateBookCopy(ctx, storable); err != nil {
			return counts, err
		}
		counts.Copies++
	}

	for _, s := range seed.Questions {
		question, err := buildSeedQuestion(s)
		if err != nil {
			return counts, err
		}

		if err = engine.CreateQuestion(ctx, shell.StorableQuestionFrom(question)); err != nil {
			return counts, err
		}
		counts.Questions++
	}

	return counts, nil
}

func buildSeedAuthor(s seedAuthor) (core.Author, error) {
	authorID, err := parseOrNewID(s.ID)
	if err != nil {
		return core.Author{}, err
	}

	birthDate, err := parseSeedDate(s.BirthDate)
	if err != nil {
		return core.Author{}, err
	}

	deathDate, err := parseSeedDate(s.DeathDate)
	if err != nil {
		return core.Author{}, err
	}

	return core.BuildAuthor(authorID, s.Prefix, s.FirstName, s.LastName, s.Suffix, birthDate, deathDate)
}

func buildSeedCopy(s seedCopy) (core.BookCopy, error) {
	copyID, err := parseOrNewID(s.ID)
	if err != nil {
		return core.BookCopy{}, err
	}

	isbn, err := core.NormalizeISBN(s.ISBN)
	if err != nil {
		return core.BookCopy{}, err
	}

	bookCopy := core.BuildBookCopy(copyID, isbn, s.Imprint)
	if s.Status == "" {
		return bookCopy, nil
	}

	status, err := core.ParseLoanStatus(s.Status)
	if err != nil {
		return core.BookCopy{}, err
	}

	return bookCopy.ChangeStatus(status)
}

func buildSeedQuestion(s seedQuestion) (pollscore.Question, error) {
	questionID, err := parseOrNewID(s.ID)
	if err != nil {
		return pollscore.Question{}, err
	}

	pubDate, err := parseSeedDate(s.PubDate)
	if err != nil {
		return pollscore.Question{}, err
	}

	question, err := pollscore.BuildQuestion(questionID, s.Text, pubDate)
	if err != nil {
		return pollscore.Question{}, err
	}

	for _, text := range s.Choices {
		choice, choiceErr := pollscore.BuildChoice(uuid.New(), question.QuestionID, text)
		if choiceErr != nil {
			return pollscore.Question{}, choiceErr
		}

		question.Choices = append(question.Choices, choice)
	}

	return question, nil
}

func parseOrNewID(id string) (uuid.UUID, error) {
	if id == "" {
		return uuid.New(), nil
	}

	return uuid.Parse(id)
}

// parseSeedDate accepts dates and RFC 3339 timestamps. Empty means unknown.
func parseSeedDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", errInvalidSeedDate, value)
}
