package dto

import (
	"strings"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
)

// Relocation statuses reported to callers.
const (
	StatusMoved         = string(ticket.RelocationMoved)
	StatusInvalidTarget = string(ticket.RelocationInvalidTarget)
	StatusUnchanged     = "unchanged"
)

type TicketSummaryDTO struct {
	ID      uint    `json:"id"`
	Subject string  `json:"subject"`
	Project *string `json:"project,omitempty"`
}

// ToTicketSummaryDTOs converts search hits, always returning a non-nil slice.
func ToTicketSummaryDTOs(summaries []*ticket.TicketSummary) []TicketSummaryDTO {
	out := make([]TicketSummaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, TicketSummaryDTO{
			ID:      s.ID,
			Subject: s.Subject,
			Project: s.ProjectName,
		})
	}
	return out
}

// RelocationResultDTO is the presented outcome of a comment move.
// WrongNewIssueID echoes the unresolvable identifier as it was given.
// CommentedAt is the original comment time in the business timezone.
type RelocationResultDTO struct {
	Status          string `json:"status"`
	NewCommentID    uint   `json:"new_comment_id,omitempty"`
	TargetTicketID  uint   `json:"target_ticket_id,omitempty"`
	NotesHTML       string `json:"notes_html,omitempty"`
	CommentedAt     string `json:"commented_at,omitempty"`
	WrongNewIssueID string `json:"wrong_new_issue_id,omitempty"`
	Message         string `json:"message"`
}

// IsBlankTarget reports a target identifier that asks for no move at all.
func IsBlankTarget(raw string) bool {
	return strings.TrimSpace(raw) == ""
}

// NewUnchangedResult is reported when no target was given and the comment
// stays where it is.
func NewUnchangedResult() *RelocationResultDTO {
	return &RelocationResultDTO{
		Status:  StatusUnchanged,
		Message: "No target ticket given, comment left in place",
	}
}
