// Package catalogstore provides the storage contracts for the library catalog
// and the polls app.
//
// This package defines the types shared by all store engines: storable DTOs for
// book copies, catalog metadata and polls, filters and pages for list queries,
// observability interfaces, consistency levels and common error definitions.
//
// The DTOs are built on scalars so that the store stays agnostic of the domain
// types in library/core and polls/core. Mapping between both worlds lives in
// shared/shell.
//
// Key types:
//   - StorableBookCopy: one lendable copy, including its optimistic concurrency version
//   - BookCopyFilter: criteria for querying book copies
//   - Page: limit/offset window for list queries
//
// Common usage pattern:
//
//	bookCopy, version, err := store.GetBookCopy(ctx, copyID)
//	if err != nil {
//		// handle error
//	}
//
//	bookCopy.Status = "o"
//	err = store.UpdateBookCopy(ctx, bookCopy, version)
//	if errors.Is(err, catalogstore.ErrConcurrencyConflict) {
//		// somebody else changed the copy in the meantime, reload and retry
//	}
package catalogstore
