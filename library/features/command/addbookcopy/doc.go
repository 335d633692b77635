// Package addbookcopy implements the Add Book Copy use case.
//
// A library adds a physical copy of a catalog title to its stock. New copies start in
// Maintenance until a librarian makes them available.
//
// The CommandHandler reads the title and the copy, the pure Decide function applies the rules,
// and the handler stores the new copy. Adding the same copy twice is a no-op.
package addbookcopy
