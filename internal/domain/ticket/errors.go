package ticket

import "errors"

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrSourceCommentNotFound marks a move whose source comment is gone or
	// already emptied, e.g. the loser of two concurrent moves.
	ErrSourceCommentNotFound = errors.New("source comment does not exist")

	// ErrNothingToRelocate marks a comment with neither notes nor attachments.
	ErrNothingToRelocate = errors.New("comment has nothing to relocate")
)
