// Package questiondetail implements the detail and results pages of a published question.
//
// Questions that are not yet published are reported as core.ErrQuestionNotFound,
// exactly like unknown ones.
package questiondetail
