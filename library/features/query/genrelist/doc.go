// Package genrelist implements the public list of genres.
package genrelist
