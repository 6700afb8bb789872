package domain

import "errors"

var (
	// ErrInvalidInput marks caller errors: zero questions, negative time,
	// malformed answer maps. Wrapped with detail via fmt.Errorf("%w: ...").
	ErrInvalidInput = errors.New("invalid input")
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrParticipantNotFound indicates an unknown participant reference.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrDuplicateParticipant indicates the email or phone is already registered.
	ErrDuplicateParticipant = errors.New("participant with this email or phone already exists")
)
