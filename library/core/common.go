package core

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"
)

// Instead of full value objects, identifiers are alias types.

// CopyIDString identifies a book copy.
type CopyIDString = string

// ISBNString identifies a title.
type ISBNString = string

// AuthorIDString identifies an author.
type AuthorIDString = string

// BorrowerIDString identifies a library member.
type BorrowerIDString = string

// ErrFieldTooLong is returned when a text field exceeds its maximum length.
var ErrFieldTooLong = errors.New("field is too long")

// ErrFieldRequired is returned when a mandatory text field is empty.
var ErrFieldRequired = errors.New("field is required")

// ToTimestamp normalizes a time to UTC with microsecond precision, which is what the store keeps.
func ToTimestamp(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	return t.UTC().Truncate(time.Microsecond)
}

// ToDate strips the clock from a time, keeping the calendar date in UTC.
func ToDate(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}

	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func checkMaxLength(field string, value string, maxLength int) error {
	if utf8.RuneCountInString(value) > maxLength {
		return fmt.Errorf("%w: %s exceeds %d characters", ErrFieldTooLong, field, maxLength)
	}

	return nil
}

func checkRequired(field string, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrFieldRequired, field)
	}

	return nil
}
