package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	pollscore "github.com/AntonStoeckl/library-catalog-go/polls/core"
)

// ErrMappingToDomainFailed is returned when a storable DTO holds values the domain doesn't accept.
var ErrMappingToDomainFailed = errors.New("mapping to domain failed")

// BookCopiesFrom converts multiple StorableBookCopies to BookCopies.
func BookCopiesFrom(storables []catalogstore.StorableBookCopy) ([]core.BookCopy, error) {
	bookCopies := make([]core.BookCopy, 0, len(storables))

	for _, storable := range storables {
		bookCopy, err := BookCopyFrom(storable)
		if err != nil {
			return nil, err
		}

		bookCopies = append(bookCopies, bookCopy)
	}

	return bookCopies, nil
}

// BookCopyFrom converts a StorableBookCopy to a BookCopy. Unknown status codes fail.
func BookCopyFrom(storable catalogstore.StorableBookCopy) (core.BookCopy, error) {
	status, err := core.ParseLoanStatus(storable.Status)
	if err != nil {
		return core.BookCopy{}, errors.Join(ErrMappingToDomainFailed, err)
	}

	return core.BookCopy{
		CopyID:     storable.CopyID,
		ISBN:       storable.ISBN,
		Imprint:    storable.Imprint,
		Status:     status,
		LoanedOn:   storable.LoanedOn,
		DueBack:    storable.DueBack,
		BorrowerID: storable.BorrowerID,
	}, nil
}

// BookFrom converts a StorableBook to a Book.
func BookFrom(storable catalogstore.StorableBook) core.Book {
	return core.Book{
		ISBN:       storable.ISBN,
		Title:      storable.Title,
		Summary:    storable.Summary,
		PubDate:    storable.PubDate,
		GenreID:    storable.GenreID,
		LanguageID: storable.LanguageID,
		AuthorIDs:  append([]string(nil), storable.AuthorIDs...),
	}
}

// BooksFrom converts multiple StorableBooks to Books.
func BooksFrom(storables []catalogstore.StorableBook) []core.Book {
	books := make([]core.Book, 0, len(storables))
	for _, storable := range storables {
		books = append(books, BookFrom(storable))
	}

	return books
}

// AuthorFrom converts a StorableAuthor to an Author.
func AuthorFrom(storable catalogstore.StorableAuthor) core.Author {
	return core.Author{
		AuthorID:  storable.AuthorID,
		Prefix:    storable.Prefix,
		FirstName: storable.FirstName,
		LastName:  storable.LastName,
		Suffix:    storable.Suffix,
		Name:      storable.Name,
		BirthDate: storable.BirthDate,
		DeathDate: storable.DeathDate,
	}
}

// AuthorsFrom converts multiple StorableAuthors to Authors.
func AuthorsFrom(storables []catalogstore.StorableAuthor) []core.Author {
	authors := make([]core.Author, 0, len(storables))
	for _, storable := range storables {
		authors = append(authors, AuthorFrom(storable))
	}

	return authors
}

// GenresFrom converts StorableGenres to Genres.
func GenresFrom(storables []catalogstore.StorableGenre) []core.Genre {
	genres := make([]core.Genre, 0, len(storables))
	for _, storable := range storables {
		genres = append(genres, core.Genre{GenreID: storable.GenreID, Name: storable.Name})
	}

	return genres
}

// LanguagesFrom converts StorableLanguages to Languages.
func LanguagesFrom(storables []catalogstore.StorableLanguage) []core.Language {
	languages := make([]core.Language, 0, len(storables))
	for _, storable := range storables {
		languages = append(languages, core.Language{LanguageID: storable.LanguageID, Name: storable.Name})
	}

	return languages
}

// BorrowerFrom converts a StorableBorrower to a Borrower.
func BorrowerFrom(storable catalogstore.StorableBorrower) core.Borrower {
	return core.Borrower{
		BorrowerID:  storable.BorrowerID,
		Username:    storable.Username,
		DisplayName: storable.DisplayName,
	}
}

// QuestionFrom converts a StorableQuestion including its choices to a Question.
func QuestionFrom(storable catalogstore.StorableQuestion) pollscore.Question {
	choices := make([]pollscore.Choice, 0, len(storable.Choices))
	for _, choice := range storable.Choices {
		choices = append(choices, pollscore.Choice{
			ChoiceID:   choice.ChoiceID,
			QuestionID: choice.QuestionID,
			Text:       choice.Text,
			Votes:      choice.Votes,
		})
	}

	return pollscore.Question{
		QuestionID: storable.QuestionID,
		Text:       storable.Text,
		PubDate:    storable.PubDate,
		Choices:    choices,
	}
}

// QuestionsFrom converts multiple StorableQuestions to Questions.
func QuestionsFrom(storables []catalogstore.StorableQuestion) []pollscore.Question {
	questions := make([]pollscore.Question, 0, len(storables))
	for _, storable := range storables {
		questions = append(questions, QuestionFrom(storable))
	}

	return questions
}
