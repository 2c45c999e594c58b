package http

import (
	"gorm.io/gorm"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/infrastructure/config"
	"github.com/orris-inc/movecomments/internal/infrastructure/repository"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	detailRepo     ticket.ChangeDetailRepository
	attachmentRepo ticket.AttachmentRepository
}

func newRepositories(db *gorm.DB, cfg *config.Config) *repositories {
	return &repositories{
		ticketRepo:     repository.NewTicketRepository(db),
		commentRepo:    repository.NewCommentRepository(db),
		detailRepo:     repository.NewChangeDetailRepository(db),
		attachmentRepo: repository.NewAttachmentRepository(db, cfg.MoveComments.AttachmentOriginTracking),
	}
}
