package bookdetail

import (
	"context"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/library/features/query/internal/authornames"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

// Store defines the store operations needed by the QueryHandler.
type Store interface {
	authornames.Store
	GetBook(ctx context.Context, isbn string) (catalogstore.StorableBook, error)
	ListGenres(ctx context.Context) ([]catalogstore.StorableGenre, error)
	ListLanguages(ctx context.Context) ([]catalogstore.StorableLanguage, error)
	QueryBookCopies(ctx context.Context, filter catalogstore.BookCopyFilter, page catalogstore.Page) ([]catalogstore.StorableBookCopy, error)
}

// QueryHandler shows one book.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle fails with catalogstore.ErrNotFound for unknown ISBNs and core.ErrInvalidISBN for malformed ones.
func (h QueryHandler) Handle(ctx context.Context, query Query) (BookDetail, error) {
	if _, err := shell.RequireLogin(ctx); err != nil {
		return BookDetail{}, err
	}

	isbn, err := core.NormalizeISBN(query.ISBN)
	if err != nil {
		return BookDetail{}, err
	}

	ctx = catalogstore.WithEventualConsistency(ctx)

	storable, err := h.store.GetBook(ctx, isbn)
	if err != nil {
		return BookDetail{}, err
	}

	book := shell.BookFrom(storable)

	authors, err := authornames.NewResolver(h.store).Resolve(ctx, book.AuthorIDs)
	if err != nil {
		return BookDetail{}, err
	}

	genre, err := h.genreName(ctx, book.GenreID)
	if err != nil {
		return BookDetail{}, err
	}

	language, err := h.languageName(ctx, book.LanguageID)
	if err != nil {
		return BookDetail{}, err
	}

	storableCopies, err := h.store.QueryBookCopies(ctx, catalogstore.BookCopyFilter{ISBN: isbn}, catalogstore.Page{})
	if err != nil {
		return BookDetail{}, err
	}

	copies, err := shell.BookCopiesFrom(storableCopies)
	if err != nil {
		return BookDetail{}, err
	}

	detail := BookDetail{
		Book:     book,
		Display:  book.Display(authors),
		Authors:  authors,
		Genre:    genre,
		Language: language,
		Copies:   copies,
	}

	for _, bookCopy := range copies {
		if bookCopy.Status == core.Available {
			detail.NumAvailable++
		}
	}

	return detail, nil
}

func (h QueryHandler) genreName(ctx context.Context, genreID string) (string, error) {
	if genreID == "" {
		return "", nil
	}

	genres, err := h.store.ListGenres(ctx)
	if err != nil {
		return "", err
	}

	for _, genre := range genres {
		if genre.GenreID == genreID {
			return genre.Name, nil
		}
	}

	return "", nil
}

func (h QueryHandler) languageName(ctx context.Context, languageID string) (string, error) {
	if languageID == "" {
		return "", nil
	}

	languages, err := h.store.ListLanguages(ctx)
	if err != nil {
		return "", err
	}

	for _, language := range languages {
		if language.LanguageID == languageID {
			return language.Name, nil
		}
	}

	return "", nil
}
