package ticket

import (
	"strconv"
	"strings"
)

// RelocationOutcome tags a RelocationResult.
type RelocationOutcome string

const (
	RelocationMoved         RelocationOutcome = "moved"
	RelocationInvalidTarget RelocationOutcome = "invalid_target"
)

// RelocationResult is what a comment move reports to its caller. Store
// faults are returned as errors and never appear here.
type RelocationResult struct {
	outcome      RelocationOutcome
	newCommentID uint
	rawInput     string
}

func NewRelocationSuccess(newCommentID uint) RelocationResult {
	return RelocationResult{outcome: RelocationMoved, newCommentID: newCommentID}
}

func NewInvalidTarget(rawInput string) RelocationResult {
	return RelocationResult{outcome: RelocationInvalidTarget, rawInput: rawInput}
}

func (r RelocationResult) Outcome() RelocationOutcome {
	return r.outcome
}

func (r RelocationResult) IsSuccess() bool {
	return r.outcome == RelocationMoved
}

func (r RelocationResult) IsInvalidTarget() bool {
	return r.outcome == RelocationInvalidTarget
}

// NewCommentID is the destination comment; zero unless IsSuccess.
func (r RelocationResult) NewCommentID() uint {
	return r.newCommentID
}

// RawInput is the unresolvable target identifier as the user typed it.
func (r RelocationResult) RawInput() string {
	return r.rawInput
}

// ParseTargetTicketID parses a user supplied target ticket identifier.
// Surrounding spaces and one leading "#" are accepted.
func ParseTargetTicketID(raw string) (uint, bool) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), IDMarker)
	if !isDigits(s) {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
