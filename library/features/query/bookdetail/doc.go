// Package bookdetail implements the detail page of one catalog title.
//
// Besides the book it shows its authors, genre and language names, and all copies with their status.
package bookdetail
