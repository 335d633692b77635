// Package memberloans implements the librarian's view of one member.
//
// It finds a member by username and lists every copy linked to them.
package memberloans
