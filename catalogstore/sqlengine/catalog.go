package sqlengine

import (
	"context"
	"database/sql"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore"
	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine/internal/adapters"
)

var authorColumns = []any{"author_id", "prefix", "first_name", "last_name", "suffix", "name", "birth_date", "death_date"}

var borrowerColumns = []any{"borrower_id", "username", "display_name"}

// CreateGenre inserts a genre.
func (e *Engine) CreateGenre(ctx context.Context, genre catalogstore.StorableGenre) error {
	op, ctx := e.startOperation(ctx, operationCreateGenre, map[string]string{logAttrRecordID: genre.GenreID})

	rowsAffected, err := e.insert(ctx, op, e.dialect.Insert(e.table(tableGenres)).Rows(goqu.Record{
		"genre_id": genre.GenreID,
		"name":     genre.Name,
	}))
	if err != nil {
		return err
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

// ListGenres returns all genres ordered by name.
func (e *Engine) ListGenres(ctx context.Context) ([]catalogstore.StorableGenre, error) {
	op, ctx := e.startOperation(ctx, operationListGenres, nil)

	stmt := e.dialect.From(e.table(tableGenres)).
		Select("genre_id", "name").
		Order(goqu.C("name").Asc(), goqu.C("genre_id").Asc())

	genres, err := selectAll(ctx, e, op, stmt, func(rows adapters.DBRows) (catalogstore.StorableGenre, error) {
		var genre catalogstore.StorableGenre
		err := rows.Scan(&genre.GenreID, &genre.Name)
		return genre, err
	})
	if err != nil {
		return nil, err
	}

	op.finishSuccess(len(genres))

	return genres, nil
}

// CreateLanguage inserts a language.
func (e *Engine) CreateLanguage(ctx context.Context, language catalogstore.StorableLanguage) error {
	op, ctx := e.startOperation(ctx, operationCreateLanguage, map[string]string{logAttrRecordID: language.LanguageID})

	rowsAffected, err := e.insert(ctx, op, e.dialect.Insert(e.table(tableLanguages)).Rows(goqu.Record{
		"language_id": language.LanguageID,
		"name":        language.Name,
	}))
	if err != nil {
		return err
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

// ListLanguages returns all languages ordered by name.
func (e *Engine) ListLanguages(ctx context.Context) ([]catalogstore.StorableLanguage, error) {
	op, ctx := e.startOperation(ctx, operationListLanguages, nil)

	stmt := e.dialect.From(e.table(tableLanguages)).
		Select("language_id", "name").
		Order(goqu.C("name").Asc(), goqu.C("language_id").Asc())

	languages, err := selectAll(ctx, e, op, stmt, func(rows adapters.DBRows) (catalogstore.StorableLanguage, error) {
		var language catalogstore.StorableLanguage
		err := rows.Scan(&language.LanguageID, &language.Name)
		return language, err
	})
	if err != nil {
		return nil, err
	}

	op.finishSuccess(len(languages))

	return languages, nil
}

// CreateAuthor inserts an author.
func (e *Engine) CreateAuthor(ctx context.Context, author catalogstore.StorableAuthor) error {
	op, ctx := e.startOperation(ctx, operationCreateAuthor, map[string]string{logAttrRecordID: author.AuthorID})

	rowsAffected, err := e.insert(ctx, op, e.dialect.Insert(e.table(tableAuthors)).Rows(goqu.Record{
		"author_id":  author.AuthorID,
		"prefix":     author.Prefix,
		"first_name": author.FirstName,
		"last_name":  author.LastName,
		"suffix":     author.Suffix,
		"name":       author.Name,
		"birth_date": formatDate(author.BirthDate),
		"death_date": formatDate(author.DeathDate),
	}))
	if err != nil {
		return err
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

// GetAuthor returns the author with the given id.
func (e *Engine) GetAuthor(ctx context.Context, authorID string) (catalogstore.StorableAuthor, error) {
	op, ctx := e.startOperation(ctx, operationGetAuthor, map[string]string{logAttrRecordID: authorID})

	stmt := e.dialect.From(e.table(tableAuthors)).
		Select(authorColumns...).
		Where(goqu.C("author_id").Eq(authorID))

	author, err := selectOne(ctx, e, op, stmt, scanAuthor)
	if err != nil {
		return catalogstore.StorableAuthor{}, err
	}

	op.finishSuccess(1)

	return author, nil
}

// ListAuthors returns authors ordered by last name, then first name.
func (e *Engine) ListAuthors(ctx context.Context, page catalogstore.Page) ([]catalogstore.StorableAuthor, error) {
	op, ctx := e.startOperation(ctx, operationListAuthors, nil)

	stmt := e.dialect.From(e.table(tableAuthors)).
		Select(authorColumns...).
		Order(goqu.C("last_name").Asc(), goqu.C("first_name").Asc(), goqu.C("author_id").Asc())
	stmt = withPage(stmt, page)

	authors, err := selectAll(ctx, e, op, stmt, scanAuthor)
	if err != nil {
		return nil, err
	}

	op.finishSuccess(len(authors))

	return authors, nil
}

// CreateBook inserts a book and its author links, keeping the order of AuthorIDs.
// The book row and the links are separate statements.
func (e *Engine) CreateBook(ctx context.Context, book catalogstore.StorableBook) error {
	op, ctx := e.startOperation(ctx, operationCreateBook, map[string]string{logAttrRecordID: book.ISBN})

	rowsAffected, err := e.insert(ctx, op, e.dialect.Insert(e.table(tableBooks)).Rows(goqu.Record{
		"isbn":        book.ISBN,
		"title":       book.Title,
		"summary":     book.Summary,
		"pub_date":    formatDate(book.PubDate),
		"genre_id":    nullableString(book.GenreID),
		"language_id": nullableString(book.LanguageID),
	}))
	if err != nil {
		return err
	}

	if len(book.AuthorIDs) > 0 {
		links := make([]any, 0, len(book.AuthorIDs))
		for position, authorID := range book.AuthorIDs {
			links = append(links, goqu.Record{
				"isbn":         book.ISBN,
				"author_id":    authorID,
				"author_order": position,
			})
		}

		linked, linkErr := e.insert(ctx, op, e.dialect.Insert(e.table(tableBookAuthors)).Rows(links...))
		if linkErr != nil {
			return linkErr
		}

		rowsAffected += linked
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

// GetBook returns the book with the given ISBN including its author ids.
func (e *Engine) GetBook(ctx context.Context, isbn string) (catalogstore.StorableBook, error) {
	op, ctx := e.startOperation(ctx, operationGetBook, map[string]string{logAttrRecordID: isbn})

	stmt := e.dialect.From(e.table(tableBooks)).
		Select(e.bookColumns()...).
		Where(e.column(tableBooks, "isbn").Eq(isbn))

	book, err := selectOne(ctx, e, op, stmt, scanBook)
	if err != nil {
		return catalogstore.StorableBook{}, err
	}

	books, err := e.withAuthorIDs(ctx, op, []catalogstore.StorableBook{book})
	if err != nil {
		return catalogstore.StorableBook{}, err
	}

	op.finishSuccess(1)

	return books[0], nil
}

// ListBooks returns books ordered by title including their author ids.
func (e *Engine) ListBooks(ctx context.Context, page catalogstore.Page) ([]catalogstore.StorableBook, error) {
	op, ctx := e.startOperation(ctx, operationListBooks, nil)

	stmt := e.dialect.From(e.table(tableBooks)).
		Select(e.bookColumns()...).
		Order(e.column(tableBooks, "title").Asc(), e.column(tableBooks, "isbn").Asc())
	stmt = withPage(stmt, page)

	books, err := selectAll(ctx, e, op, stmt, scanBook)
	if err != nil {
		return nil, err
	}

	if books, err = e.withAuthorIDs(ctx, op, books); err != nil {
		return nil, err
	}

	op.finishSuccess(len(books))

	return books, nil
}

// QueryBooksByAuthor returns the books written by the author, ordered by title.
func (e *Engine) QueryBooksByAuthor(ctx context.Context, authorID string) ([]catalogstore.StorableBook, error) {
	op, ctx := e.startOperation(ctx, operationBooksByAuthor, map[string]string{logAttrRecordID: authorID})

	stmt := e.dialect.From(e.table(tableBooks)).
		Select(e.bookColumns()...).
		InnerJoin(
			goqu.T(e.table(tableBookAuthors)),
			goqu.On(e.column(tableBookAuthors, "isbn").Eq(e.column(tableBooks, "isbn"))),
		).
		Where(e.column(tableBookAuthors, "author_id").Eq(authorID)).
		Order(e.column(tableBooks, "title").Asc(), e.column(tableBooks, "isbn").Asc())

	books, err := selectAll(ctx, e, op, stmt, scanBook)
	if err != nil {
		return nil, err
	}

	if books, err = e.withAuthorIDs(ctx, op, books); err != nil {
		return nil, err
	}

	op.finishSuccess(len(books))

	return books, nil
}

// CreateBorrower inserts a library member.
func (e *Engine) CreateBorrower(ctx context.Context, borrower catalogstore.StorableBorrower) error {
	op, ctx := e.startOperation(ctx, operationCreateBorrower, map[string]string{logAttrRecordID: borrower.BorrowerID})

	rowsAffected, err := e.insert(ctx, op, e.dialect.Insert(e.table(tableBorrowers)).Rows(goqu.Record{
		"borrower_id":  borrower.BorrowerID,
		"username":     borrower.Username,
		"display_name": borrower.DisplayName,
	}))
	if err != nil {
		return err
	}

	op.finishSuccess(int(rowsAffected))

	return nil
}

// GetBorrower returns the member with the given id.
func (e *Engine) GetBorrower(ctx context.Context, borrowerID string) (catalogstore.StorableBorrower, error) {
	return e.getBorrowerBy(ctx, "borrower_id", borrowerID)
}

// GetBorrowerByUsername returns the member with the given username.
func (e *Engine) GetBorrowerByUsername(ctx context.Context, username string) (catalogstore.StorableBorrower, error) {
	return e.getBorrowerBy(ctx, "username", username)
}

func (e *Engine) getBorrowerBy(ctx context.Context, column string, value string) (catalogstore.StorableBorrower, error) {
	op, ctx := e.startOperation(ctx, operationGetBorrower, map[string]string{logAttrRecordID: value})

	stmt := e.dialect.From(e.table(tableBorrowers)).
		Select(borrowerColumns...).
		Where(goqu.C(column).Eq(value))

	borrower, err := selectOne(ctx, e, op, stmt, scanBorrower)
	if err != nil {
		return catalogstore.StorableBorrower{}, err
	}

	op.finishSuccess(1)

	return borrower, nil
}

// ListBorrowers returns all members ordered by username.
func (e *Engine) ListBorrowers(ctx context.Context) ([]catalogstore.StorableBorrower, error) {
	op, ctx := e.startOperation(ctx, operationListBorrowers, nil)

	stmt := e.dialect.From(e.table(tableBorrowers)).
		Select(borrowerColumns...).
		Order(goqu.C("username").Asc())

	borrowers, err := selectAll(ctx, e, op, stmt, scanBorrower)
	if err != nil {
		return nil, err
	}

	op.finishSuccess(len(borrowers))

	return borrowers, nil
}

func (e *Engine) bookColumns() []any {
	return []any{
		e.column(tableBooks, "isbn"),
		e.column(tableBooks, "title"),
		e.column(tableBooks, "summary"),
		e.column(tableBooks, "pub_date"),
		e.column(tableBooks, "genre_id"),
		e.column(tableBooks, "language_id"),
	}
}

// withAuthorIDs loads the author links of all given books with one statement.
func (e *Engine) withAuthorIDs(
	ctx context.Context,
	op *operation,
	books []catalogstore.StorableBook,
) ([]catalogstore.StorableBook, error) {

	if len(books) == 0 {
		return books, nil
	}

	isbns := make([]any, 0, len(books))
	for _, book := range books {
		isbns = append(isbns, book.ISBN)
	}

	stmt := e.dialect.From(e.table(tableBookAuthors)).
		Select("isbn", "author_id").
		Where(goqu.C("isbn").In(isbns...)).
		Order(goqu.C("isbn").Asc(), goqu.C("author_order").Asc())

	type link struct {
		isbn     string
		authorID string
	}

	links, err := selectAll(ctx, e, op, stmt, func(rows adapters.DBRows) (link, error) {
		var l link
		err := rows.Scan(&l.isbn, &l.authorID)
		return l, err
	})
	if err != nil {
		return nil, err
	}

	authorIDs := make(map[string][]string, len(books))
	for _, l := range links {
		authorIDs[l.isbn] = append(authorIDs[l.isbn], l.authorID)
	}

	for i := range books {
		books[i].AuthorIDs = authorIDs[books[i].ISBN]
	}

	return books, nil
}

func scanBook(rows adapters.DBRows) (catalogstore.StorableBook, error) {
	var (
		book       catalogstore.StorableBook
		pubDate    nullTimestamp
		genreID    sql.NullString
		languageID sql.NullString
	)

	if err := rows.Scan(&book.ISBN, &book.Title, &book.Summary, &pubDate, &genreID, &languageID); err != nil {
		return catalogstore.StorableBook{}, err
	}

	book.PubDate = pubDate.Time
	book.GenreID = genreID.String
	book.LanguageID = languageID.String

	return book, nil
}

func scanAuthor(rows adapters.DBRows) (catalogstore.StorableAuthor, error) {
	var (
		author    catalogstore.StorableAuthor
		birthDate nullTimestamp
		deathDate nullTimestamp
	)

	err := rows.Scan(
		&author.AuthorID,
		&author.Prefix,
		&author.FirstName,
		&author.LastName,
		&author.Suffix,
		&author.Name,
		&birthDate,
		&deathDate,
	)
	if err != nil {
		return catalogstore.StorableAuthor{}, err
	}

	author.BirthDate = birthDate.Time
	author.DeathDate = deathDate.Time

	return author, nil
}

func scanBorrower(rows adapters.DBRows) (catalogstore.StorableBorrower, error) {
	var borrower catalogstore.StorableBorrower
	err := rows.Scan(&borrower.BorrowerID, &borrower.Username, &borrower.DisplayName)

	return borrower, err
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}

	return s
}
