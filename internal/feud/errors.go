/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package feud

import "errors"

var (
	// ErrValidation is returned when a question is missing its text or answers.
	ErrValidation = errors.New("invalid question")

	// ErrIndex is returned for an out-of-range question index.
	ErrIndex = errors.New("index out of range")

	// ErrNotFound is returned when a question file does not exist.
	ErrNotFound = errors.New("question file not found")

	// ErrParse is returned when a question file is malformed.
	ErrParse = errors.New("malformed question file")

	// ErrIO is returned when questions cannot be written.
	ErrIO = errors.New("unable to write question file")

	// ErrAdmissionDenied reports a mistake that was not counted because the
	// team is already at MaxMistakes or no question is active.
	ErrAdmissionDenied = errors.New("mistake not counted")
)
