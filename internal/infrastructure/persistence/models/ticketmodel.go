package models

import (
	"gorm.io/gorm"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
)

type ProjectModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

type TicketModel struct {
	ID        uint   `gorm:"primaryKey"`
	ProjectID uint   `gorm:"not null;index"`
	Subject   string `gorm:"size:255;not null"`
	// SubjectFolded is maintained by BeforeSave and is what searches match.
	SubjectFolded string `gorm:"size:512;not null;default:''"`
	AuthorID      uint   `gorm:"not null;index"`
	AssigneeID    *uint  `gorm:"index"`
	CreatedAt     int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

func (m *TicketModel) BeforeSave(tx *gorm.DB) error {
	m.SubjectFolded = ticket.FoldSubject(m.Subject)
	return nil
}

// TicketSummaryRow is the projection read by ticket searches.
type TicketSummaryRow struct {
	ID          uint
	Subject     string
	ProjectName *string
}
