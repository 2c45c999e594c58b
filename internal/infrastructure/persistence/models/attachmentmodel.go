package models

type AttachmentModel struct {
	ID            uint   `gorm:"primaryKey"`
	ContainerID   uint   `gorm:"not null;index:idx_attachments_container"`
	ContainerType string `gorm:"size:30;not null;index:idx_attachments_container"`
	// CommentID is the comment that introduced the file. Older schemas
	// lack the column; see the attachment_origin_tracking setting.
	CommentID   *uint  `gorm:"index"`
	Filename    string `gorm:"size:255;not null"`
	Filesize    int64  `gorm:"not null;default:0"`
	ContentType string `gorm:"size:255"`
	AuthorID    uint   `gorm:"not null"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (AttachmentModel) TableName() string {
	return "ticket_attachments"
}
