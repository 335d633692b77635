// Package authordetail implements the detail page of an author with the books they wrote.
package authordetail
