// Package latestquestions implements the index page of the polls app.
package latestquestions
