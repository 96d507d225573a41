package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a guest or event lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken reports redemption of a token that is unknown, already
	// claimed, or superseded by a newer invitation round.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// IssuePhase identifies which step of invitation issuance failed. Phases run
// in strict order; nothing after the failing phase has executed.
type IssuePhase string

const (
	PhaseLookup   IssuePhase = "lookup"
	PhasePersist  IssuePhase = "persist"
	PhaseDispatch IssuePhase = "dispatch"
)

type IssueError struct {
	Phase IssuePhase
	Err   error
}

func (e *IssueError) Error() string {
	return fmt.Sprintf("invitation %s failed: %v", e.Phase, e.Err)
}

func (e *IssueError) Unwrap() error {
	return e.Err
}
