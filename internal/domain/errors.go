package domain

import "errors"

var (
	// ErrSheetNotFound is returned when a scoring sheet has not been opened.
	ErrSheetNotFound = errors.New("scoring sheet not found")
	// ErrSectionNotFound indicates the section configuration could not be loaded.
	ErrSectionNotFound = errors.New("section not found")
	// ErrQuestionOutOfRange indicates a question number outside 1..QuestionCount.
	ErrQuestionOutOfRange = errors.New("question number out of range")
	// ErrNoAnswerKeys is returned when submit is attempted with every key field empty.
	ErrNoAnswerKeys = errors.New("no answer keys entered")
)
