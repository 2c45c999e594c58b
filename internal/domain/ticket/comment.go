package ticket

import (
	"fmt"
	"strings"
	"time"
)

// Comment is a journal entry on a ticket: optional free-text notes plus the
// structured change details recorded with it.
type Comment struct {
	id           uint
	ticketID     uint
	userID       uint
	notes        *string
	privateNotes bool
	createdAt    time.Time
	details      []*ChangeDetail
}

func ReconstructComment(
	id uint,
	ticketID uint,
	userID uint,
	notes *string,
	privateNotes bool,
	createdAt time.Time,
	details []*ChangeDetail,
) (*Comment, error) {
	if id == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	if details == nil {
		details = []*ChangeDetail{}
	}

	return &Comment{
		id:           id,
		ticketID:     ticketID,
		userID:       userID,
		notes:        notes,
		privateNotes: privateNotes,
		createdAt:    createdAt,
		details:      details,
	}, nil
}

// CopyTo returns an unsaved comment on ticketID carrying this comment's
// author, notes, private flag and creation time. Details are not copied.
func (c *Comment) CopyTo(ticketID uint) (*Comment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("target ticket ID is required")
	}

	var notes *string
	if c.notes != nil {
		n := *c.notes
		notes = &n
	}

	return &Comment{
		ticketID:     ticketID,
		userID:       c.userID,
		notes:        notes,
		privateNotes: c.privateNotes,
		createdAt:    c.createdAt,
		details:      []*ChangeDetail{},
	}, nil
}

func (c *Comment) ID() uint {
	return c.id
}

func (c *Comment) TicketID() uint {
	return c.ticketID
}

func (c *Comment) UserID() uint {
	return c.userID
}

func (c *Comment) Notes() *string {
	return c.notes
}

// NotesText returns the notes or an empty string when there are none.
func (c *Comment) NotesText() string {
	if c.notes == nil {
		return ""
	}
	return *c.notes
}

func (c *Comment) HasNotes() bool {
	return c.notes != nil && strings.TrimSpace(*c.notes) != ""
}

func (c *Comment) PrivateNotes() bool {
	return c.privateNotes
}

func (c *Comment) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Comment) Details() []*ChangeDetail {
	detailsCopy := make([]*ChangeDetail, len(c.details))
	copy(detailsCopy, c.details)
	return detailsCopy
}

// AttachmentDetails returns the details that record attachment events.
func (c *Comment) AttachmentDetails() []*ChangeDetail {
	var out []*ChangeDetail
	for _, d := range c.details {
		if d.IsAttachment() {
			out = append(out, d)
		}
	}
	return out
}

// IsVestigial reports a comment with neither notes nor details.
// Such a comment must not be persisted.
func (c *Comment) IsVestigial() bool {
	return !c.HasNotes() && len(c.details) == 0
}

// HasRelocatableContent reports whether moving the comment would carry
// anything: non-blank notes or at least one attachment detail.
func (c *Comment) HasRelocatableContent() bool {
	return c.HasNotes() || len(c.AttachmentDetails()) > 0
}

func (c *Comment) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = id
	return nil
}

// ClearNotes drops the free-text notes, keeping the structured details.
func (c *Comment) ClearNotes() {
	c.notes = nil
}
