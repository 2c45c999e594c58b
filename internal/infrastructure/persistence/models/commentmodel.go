package models

type CommentModel struct {
	ID           uint    `gorm:"primaryKey"`
	TicketID     uint    `gorm:"not null;index"`
	UserID       uint    `gorm:"not null;index"`
	Notes        *string `gorm:"type:text"`
	PrivateNotes bool    `gorm:"not null;default:false"`
	// CreatedAt is written explicitly so a moved comment keeps its original time.
	CreatedAt int64 `gorm:"not null;index"`
}

func (CommentModel) TableName() string {
	return "ticket_comments"
}

// CommentDetailModel is unique on (comment, property, key); a comment records
// each change once.
type CommentDetailModel struct {
	ID        uint    `gorm:"primaryKey"`
	CommentID uint    `gorm:"not null;index;uniqueIndex:idx_ticket_comment_details_property,priority:1"`
	Property  string  `gorm:"size:30;not null;uniqueIndex:idx_ticket_comment_details_property,priority:2"`
	PropKey   string  `gorm:"size:30;not null;uniqueIndex:idx_ticket_comment_details_property,priority:3"`
	OldValue  *string `gorm:"type:text"`
	Value     *string `gorm:"type:text"`
}

func (CommentDetailModel) TableName() string {
	return "ticket_comment_details"
}
