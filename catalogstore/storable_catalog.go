package catalogstore

import "time"

// StorableBook is the DTO for a catalog title. Books are identified by their ISBN.
type StorableBook struct {
	ISBN       string
	Title      string
	Summary    string
	PubDate    time.Time
	GenreID    string
	LanguageID string
	AuthorIDs  []string
}

// StorableAuthor is the DTO for an author. Zero BirthDate/DeathDate are stored as NULL.
type StorableAuthor struct {
	AuthorID  string
	Prefix    string
	FirstName string
	LastName  string
	Suffix    string
	Name      string
	BirthDate time.Time
	DeathDate time.Time
}

// StorableGenre is the DTO for a genre.
type StorableGenre struct {
	GenreID string
	Name    string
}

// StorableLanguage is the DTO for a language.
type StorableLanguage struct {
	LanguageID string
	Name       string
}

// StorableBorrower is the DTO for a library member that can borrow copies.
type StorableBorrower struct {
	BorrowerID  string
	Username    string
	DisplayName string
}
