package core

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	maxPrefixLength    = 4
	maxFirstNameLength = 20
	maxLastNameLength  = 30
	maxSuffixLength    = 5
	maxNameLength      = 69

	authorURLPrefix = "/catalog/authors/"
)

// ErrDeathBeforeBirth is returned when an author's death date lies before the birth date.
var ErrDeathBeforeBirth = errors.New("date of death must not be before date of birth")

// Author wrote one or more books. Name is the full search name, derived from the name parts.
type Author struct {
	AuthorID  AuthorIDString
	Prefix    string
	FirstName string
	LastName  string
	Suffix    string
	Name      string
	BirthDate time.Time
	DeathDate time.Time
}

// BuildAuthor validates the name parts and creates an Author. Zero dates mean unknown.
func BuildAuthor(
	authorID uuid.UUID,
	prefix string,
	firstName string,
	lastName string,
	suffix string,
	birthDate time.Time,
	deathDate time.Time,
) (Author, error) {

	name := SearchName(prefix, firstName, lastName, suffix)

	if err := errors.Join(
		checkRequired("first name", firstName),
		checkRequired("last name", lastName),
		checkMaxLength("prefix", prefix, maxPrefixLength),
		checkMaxLength("first name", firstName, maxFirstNameLength),
		checkMaxLength("last name", lastName, maxLastNameLength),
		checkMaxLength("suffix", suffix, maxSuffixLength),
		checkMaxLength("name", name, maxNameLength),
	); err != nil {
		return Author{}, err
	}

	birthDate, deathDate = ToDate(birthDate), ToDate(deathDate)
	if !birthDate.IsZero() && !deathDate.IsZero() && deathDate.Before(birthDate) {
		return Author{}, ErrDeathBeforeBirth
	}

	return Author{
		AuthorID:  authorID.String(),
		Prefix:    prefix,
		FirstName: firstName,
		LastName:  lastName,
		Suffix:    suffix,
		Name:      name,
		BirthDate: birthDate,
		DeathDate: deathDate,
	}, nil
}

// SearchName joins the non-empty name parts with single spaces.
func SearchName(prefix, firstName, lastName, suffix string) string {
	parts := make([]string, 0, 4)
	for _, part := range []string{prefix, firstName, lastName, suffix} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}

	return strings.Join(parts, " ")
}

// Display returns "<first name> <last name>".
func (a Author) Display() string {
	return a.FirstName + " " + a.LastName
}

// URL returns the catalog path of the author's detail page.
func (a Author) URL() string {
	return authorURLPrefix + a.AuthorID
}
