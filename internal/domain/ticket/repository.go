package ticket

import (
	"context"
)

// VisibilityPredicate narrows ticket searches to what an actor may see.
type VisibilityPredicate interface {
	// VisibleProjectIDs returns the projects userID may see. all is true when
	// the actor is unrestricted, in which case ids is ignored.
	VisibleProjectIDs(ctx context.Context, userID uint) (ids []uint, all bool, err error)
	// CanView reports whether userID may see tickets of projectID.
	CanView(userID, projectID uint) (bool, error)
}

type TicketRepository interface {
	GetByID(ctx context.Context, ticketID uint) (*Ticket, error)
	Search(ctx context.Context, criteria TicketSearchCriteria) ([]*TicketSummary, error)
	// ListIDsCommentedBy returns tickets on which userID wrote non-empty notes, ascending.
	ListIDsCommentedBy(ctx context.Context, userID uint, limit int) ([]uint, error)
	// ListIDsAssignedTo returns tickets assigned to userID, ascending.
	ListIDsAssignedTo(ctx context.Context, userID uint, limit int) ([]uint, error)
}

type CommentRepository interface {
	GetByID(ctx context.Context, commentID uint) (*Comment, error)
	// GetByIDForUpdate loads the comment and its details holding a row lock
	// for the rest of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, commentID uint) (*Comment, error)
	Save(ctx context.Context, comment *Comment) error
	ClearNotes(ctx context.Context, commentID uint) error
	Delete(ctx context.Context, commentID uint) error
	CountDetails(ctx context.Context, commentID uint) (int64, error)
}

type ChangeDetailRepository interface {
	Save(ctx context.Context, detail *ChangeDetail) error
	Delete(ctx context.Context, detailID uint) error
}

type AttachmentRepository interface {
	GetByID(ctx context.Context, attachmentID uint) (*Attachment, error)
	Update(ctx context.Context, attachment *Attachment) error
}
