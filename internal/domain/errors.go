package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the game engine wraps exactly one of them,
// so callers can branch with errors.Is(err, domain.ErrNotFound) and friends.
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrValidation       = errors.New("validation failed")
)

var (
	// ErrSessionNotFound is returned when a game session id is unknown.
	ErrSessionNotFound = fmt.Errorf("game session %w", ErrNotFound)
	// ErrQuestionNotFound indicates a question id is not in the bank.
	ErrQuestionNotFound = fmt.Errorf("question %w", ErrNotFound)
	// ErrSegmentNotFound indicates a wheel segment id is unknown.
	ErrSegmentNotFound = fmt.Errorf("wheel segment %w", ErrNotFound)

	// ErrSessionCompleted is returned for spin/answer/hint against a finished session.
	ErrSessionCompleted = fmt.Errorf("%w: game session already completed", ErrInvalidOperation)
	// ErrNoSegments is returned when the wheel has no selectable segments.
	ErrNoSegments = fmt.Errorf("%w: no wheel segments configured", ErrInvalidOperation)
	// ErrNoQuestionsAvailable is returned when no question matches a start filter.
	ErrNoQuestionsAvailable = fmt.Errorf("%w: no questions available for the requested filter", ErrInvalidOperation)

	// ErrMissingSessionID rejects requests without a session id.
	ErrMissingSessionID = fmt.Errorf("%w: session id is required", ErrValidation)
	// ErrMissingQuestionID rejects answers and hints without a question id.
	ErrMissingQuestionID = fmt.Errorf("%w: question id is required", ErrValidation)
	// ErrInvalidStart rejects malformed start requests.
	ErrInvalidStart = fmt.Errorf("%w: grade, subject and a positive question count are required", ErrValidation)
	// ErrInvalidTimeSpent rejects negative answer timings.
	ErrInvalidTimeSpent = fmt.Errorf("%w: time spent must not be negative", ErrValidation)

	// ErrVersionConflict is returned by stores when a session was saved by someone else
	// since it was loaded.
	ErrVersionConflict = errors.New("game session was modified concurrently")
)
