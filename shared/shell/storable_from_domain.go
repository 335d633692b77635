package shell

import (
	"errors"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	pollscore "github.com/AntonStoeckl/library-catalog-go/polls/core"
)

// ErrMappingToStorableFailed is returned when a domain struct can't be converted into its storable DTO.
var ErrMappingToStorableFailed = errors.New("mapping to storable failed")

// StorableBookCopyFrom converts a BookCopy to a StorableBookCopy.
func StorableBookCopyFrom(bookCopy core.BookCopy) (catalogstore.StorableBookCopy, error) {
	storable, err := catalogstore.BuildStorableBookCopy(
		bookCopy.CopyID,
		bookCopy.ISBN,
		bookCopy.Imprint,
		bookCopy.Status.Code(),
		bookCopy.LoanedOn,
		bookCopy.DueBack,
		bookCopy.BorrowerID,
	)
	if err != nil {
		return catalogstore.StorableBookCopy{}, errors.Join(ErrMappingToStorableFailed, err)
	}

	return storable, nil
}

// StorableBookFrom converts a Book to a StorableBook.
func StorableBookFrom(book core.Book) catalogstore.StorableBook {
	return catalogstore.StorableBook{
		ISBN:       book.ISBN,
		Title:      book.Title,
		Summary:    book.Summary,
		PubDate:    book.PubDate,
		GenreID:    book.GenreID,
		LanguageID: book.LanguageID,
		AuthorIDs:  append([]string(nil), book.AuthorIDs...),
	}
}

// StorableAuthorFrom converts an Author to a StorableAuthor.
func StorableAuthorFrom(author core.Author) catalogstore.StorableAuthor {
	return catalogstore.StorableAuthor{
		AuthorID:  author.AuthorID,
		Prefix:    author.Prefix,
		FirstName: author.FirstName,
		LastName:  author.LastName,
		Suffix:    author.Suffix,
		Name:      author.Name,
		BirthDate: author.BirthDate,
		DeathDate: author.DeathDate,
	}
}

// StorableGenreFrom converts a Genre to a StorableGenre.
func StorableGenreFrom(genre core.Genre) catalogstore.StorableGenre {
	return catalogstore.StorableGenre{GenreID: genre.GenreID, Name: genre.Name}
}

// StorableLanguageFrom converts a Language to a StorableLanguage.
func StorableLanguageFrom(language core.Language) catalogstore.StorableLanguage {
	return catalogstore.StorableLanguage{LanguageID: language.LanguageID, Name: language.Name}
}

// StorableBorrowerFrom converts a Borrower to a StorableBorrower.
func StorableBorrowerFrom(borrower core.Borrower) catalogstore.StorableBorrower {
	return catalogstore.StorableBorrower{
		BorrowerID:  borrower.BorrowerID,
		Username:    borrower.Username,
		DisplayName: borrower.DisplayName,
	}
}

// StorableQuestionFrom converts a Question including its choices to a StorableQuestion.
func StorableQuestionFrom(question pollscore.Question) catalogstore.StorableQuestion {
	choices := make([]catalogstore.StorableChoice, 0, len(question.Choices))
	for _, choice := range question.Choices {
		choices = append(choices, StorableChoiceFrom(choice))
	}

	return catalogstore.StorableQuestion{
		QuestionID: question.QuestionID,
		Text:       question.Text,
		PubDate:    question.PubDate,
		Choices:    choices,
	}
}

// StorableChoiceFrom converts a Choice to a StorableChoice.
func StorableChoiceFrom(choice pollscore.Choice) catalogstore.StorableChoice {
	return catalogstore.StorableChoice{
		ChoiceID:   choice.ChoiceID,
		QuestionID: choice.QuestionID,
		Text:       choice.Text,
		Votes:      choice.Votes,
	}
}
