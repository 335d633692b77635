// Package core contains the domain of the polls app: questions with a publication date
// and choices that collect votes.
package core
