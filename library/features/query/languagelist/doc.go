// Package languagelist implements the public list of languages.
package languagelist
