// Package shell is the imperative shell around the library and polls cores.
//
// It maps between the domain structs of library/core and polls/core and the
// storable DTOs of the catalog store, runs command handlers with optimistic
// concurrency retries, carries the principal and the session of a request in
// its context, and provides the observability helpers the handler wrappers use.
//
// In Domain-Driven Design or Hexagonal Architecture terminology, this would be
// called the 'infrastructure' layer.
package shell
