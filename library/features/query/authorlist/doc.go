// Package authorlist implements the paged list of authors, ordered by last and first name.
package authorlist
