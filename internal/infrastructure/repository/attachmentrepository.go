package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/models"
	"github.com/orris-inc/movecomments/internal/shared/constants"
	db "github.com/orris-inc/movecomments/internal/shared/db"
)

const attachmentOriginColumn = "comment_id"

var _ ticket.AttachmentRepository = (*AttachmentRepository)(nil)

type AttachmentRepository struct {
	db          *gorm.DB
	mapper      mappers.TicketMapper
	trackOrigin bool
}

// NewAttachmentRepository creates an attachment repository. trackOrigin tells
// whether the schema has the comment-origin column; without it the column is
// neither read nor written.
func NewAttachmentRepository(db *gorm.DB, trackOrigin bool) *AttachmentRepository {
	return &AttachmentRepository{
		db:          db,
		mapper:      mappers.NewTicketMapper(),
		trackOrigin: trackOrigin,
	}
}

func (r *AttachmentRepository) scoped(ctx context.Context) *gorm.DB {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.AttachmentModel{})
	if !r.trackOrigin {
		tx = tx.Omit(attachmentOriginColumn)
	}
	return tx
}

func (r *AttachmentRepository) GetByID(ctx context.Context, id uint) (*ticket.Attachment, error) {
	var model models.AttachmentModel
	if err := r.scoped(ctx).
		Where("container_type = ?", constants.ContainerTypeTicket).
		First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ticket.ErrAttachmentNotFound, id)
		}
		return nil, fmt.Errorf("failed to find attachment: %w", err)
	}

	return r.mapper.AttachmentToDomain(&model)
}

// Update persists the attachment's container and, when tracked, its origin comment.
func (r *AttachmentRepository) Update(ctx context.Context, a *ticket.Attachment) error {
	updates := map[string]interface{}{
		"container_id":   a.ContainerID(),
		"container_type": constants.ContainerTypeTicket,
	}
	if r.trackOrigin {
		updates[attachmentOriginColumn] = a.CommentID()
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.AttachmentModel{}).
		Where("id = ?", a.ID()).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update attachment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ticket.ErrAttachmentNotFound, a.ID())
	}

	return nil
}
