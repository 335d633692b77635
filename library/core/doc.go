// Package core contains the domain of the library catalog:
// book copies with their loan lifecycle, titles, authors, genres, languages and borrowers.
//
// The heart of the package is BookCopy. Its status moves between Maintenance, Available,
// Reserved and Loaned. Lending computes a due date from the loan date and a LoanPeriod,
// renewals accept only the extensions validated by ValidateExtension.
//
// All functions are pure. "Now" is always passed in by the caller, nothing here reads the clock
// or touches a database. Persistence is done by the feature handlers via the catalog store.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'domain' layer.
package core
