// Package catalogsummary implements the catalog home page query.
//
// It counts titles, authors, genres, languages, copies and available copies, and reports how
// often the visitor's session has seen the page before. Each call counts as one more visit.
// The counts run concurrently.
package catalogsummary
