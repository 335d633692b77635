// Package booklist implements the paged list of catalog titles for logged-in members.
package booklist
