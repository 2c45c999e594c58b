package ticket

import (
	"fmt"
	"time"
)

// Attachment is a file owned by a ticket, optionally linked to the comment
// that introduced it.
type Attachment struct {
	id          uint
	containerID uint
	commentID   *uint
	filename    string
	filesize    int64
	contentType string
	authorID    uint
	createdAt   time.Time
}

func ReconstructAttachment(
	id uint,
	containerID uint,
	commentID *uint,
	filename string,
	filesize int64,
	contentType string,
	authorID uint,
	createdAt time.Time,
) (*Attachment, error) {
	if id == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if containerID == 0 {
		return nil, fmt.Errorf("attachment container is required")
	}

	return &Attachment{
		id:          id,
		containerID: containerID,
		commentID:   commentID,
		filename:    filename,
		filesize:    filesize,
		contentType: contentType,
		authorID:    authorID,
		createdAt:   createdAt,
	}, nil
}

func (a *Attachment) ID() uint {
	return a.id
}

func (a *Attachment) ContainerID() uint {
	return a.containerID
}

func (a *Attachment) CommentID() *uint {
	return a.commentID
}

func (a *Attachment) Filename() string {
	return a.filename
}

func (a *Attachment) Filesize() int64 {
	return a.filesize
}

func (a *Attachment) ContentType() string {
	return a.contentType
}

func (a *Attachment) AuthorID() uint {
	return a.authorID
}

func (a *Attachment) CreatedAt() time.Time {
	return a.createdAt
}

// MoveTo reassigns the attachment to ticketID. originCommentID, when non-nil,
// replaces the comment-origin reference.
func (a *Attachment) MoveTo(ticketID uint, originCommentID *uint) error {
	if ticketID == 0 {
		return fmt.Errorf("target ticket ID is required")
	}
	a.containerID = ticketID
	if originCommentID != nil {
		id := *originCommentID
		a.commentID = &id
	}
	return nil
}
