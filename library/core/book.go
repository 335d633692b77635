package core

import (
	"errors"
	"strings"
	"time"
)

const (
	maxISBNDigits     = 13
	maxTitleLength    = 100
	maxSummaryLength  = 1000
	maxCategoryLength = 200
)

// ErrInvalidISBN is returned for ISBNs that aren't 1 to 13 digits, hyphens and spaces aside.
var ErrInvalidISBN = errors.New("isbn must consist of up to 13 digits")

// Book is a catalog title, identified by its ISBN.
type Book struct {
	ISBN       ISBNString
	Title      string
	Summary    string
	PubDate    time.Time
	GenreID    string
	LanguageID string
	AuthorIDs  []AuthorIDString
}

// BuildBook validates and creates a Book. The ISBN is normalized to its digits.
func BuildBook(
	isbn string,
	title string,
	summary string,
	pubDate time.Time,
	genreID string,
	languageID string,
	authorIDs []AuthorIDString,
) (Book, error) {

	normalizedISBN, err := NormalizeISBN(isbn)
	if err != nil {
		return Book{}, err
	}

	if err = errors.Join(
		checkRequired("title", title),
		checkMaxLength("title", title, maxTitleLength),
		checkMaxLength("summary", summary, maxSummaryLength),
	); err != nil {
		return Book{}, err
	}

	return Book{
		ISBN:       normalizedISBN,
		Title:      title,
		Summary:    summary,
		PubDate:    ToDate(pubDate),
		GenreID:    genreID,
		LanguageID: languageID,
		AuthorIDs:  append([]AuthorIDString(nil), authorIDs...),
	}, nil
}

// NormalizeISBN strips hyphens and spaces and checks that 1 to 13 digits remain.
func NormalizeISBN(isbn string) (ISBNString, error) {
	normalized := strings.NewReplacer("-", "", " ", "").Replace(isbn)

	if normalized == "" || len(normalized) > maxISBNDigits {
		return "", ErrInvalidISBN
	}

	for _, r := range normalized {
		if r < '0' || r > '9' {
			return "", ErrInvalidISBN
		}
	}

	return normalized, nil
}

// Display renders "<title> by <author names>", authors in the given order.
func (b Book) Display(authors []Author) string {
	if len(authors) == 0 {
		return b.Title
	}

	names := make([]string, 0, len(authors))
	for _, author := range authors {
		names = append(names, author.Display())
	}

	return b.Title + " by " + strings.Join(names, ", ")
}

// Genre is a category of books, e.g. "Science Fiction".
type Genre struct {
	GenreID string
	Name    string
}

// BuildGenre validates and creates a Genre.
func BuildGenre(genreID string, name string) (Genre, error) {
	if err := errors.Join(
		checkRequired("genre id", genreID),
		checkRequired("genre name", name),
		checkMaxLength("genre name", name, maxCategoryLength),
	); err != nil {
		return Genre{}, err
	}

	return Genre{GenreID: genreID, Name: name}, nil
}

// Language is the language a book is written in.
type Language struct {
	LanguageID string
	Name       string
}

// BuildLanguage validates and creates a Language.
func BuildLanguage(languageID string, name string) (Language, error) {
	if err := errors.Join(
		checkRequired("language id", languageID),
		checkRequired("language name", name),
		checkMaxLength("language name", name, maxCategoryLength),
	); err != nil {
		return Language{}, err
	}

	return Language{LanguageID: languageID, Name: name}, nil
}
