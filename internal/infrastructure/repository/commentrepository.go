package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/models"
	db "github.com/orris-inc/movecomments/internal/shared/db"
)

var (
	_ ticket.CommentRepository      = (*CommentRepository)(nil)
	_ ticket.ChangeDetailRepository = (*ChangeDetailRepository)(nil)
)

type CommentRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *CommentRepository) GetByID(ctx context.Context, id uint) (*ticket.Comment, error) {
	return r.load(ctx, id, false)
}

func (r *CommentRepository) GetByIDForUpdate(ctx context.Context, id uint) (*ticket.Comment, error) {
	return r.load(ctx, id, true)
}

func (r *CommentRepository) load(ctx context.Context, id uint, lock bool) (*ticket.Comment, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Model(&models.CommentModel{})
	if lock {
		query = query.Scopes(db.ForUpdate())
	}

	var model models.CommentModel
	if err := query.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ticket.ErrCommentNotFound, id)
		}
		return nil, fmt.Errorf("failed to find comment: %w", err)
	}

	// Load details in a single query and convert via mapper
	var details []models.CommentDetailModel
	if err := tx.
		Where("comment_id = ?", id).
		Order("id ASC").
		Find(&details).Error; err != nil {
		return nil, fmt.Errorf("failed to load comment details: %w", err)
	}

	return r.mapper.CommentToDomain(&model, details)
}

func (r *CommentRepository) Save(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CommentRepository) ClearNotes(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Model(&models.CommentModel{}).
		Where("id = ?", id).
		Update("notes", gorm.Expr("NULL"))
	if result.Error != nil {
		return fmt.Errorf("failed to clear comment notes: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ticket.ErrCommentNotFound, id)
	}

	return nil
}

// Delete removes the comment together with any details it still owns.
func (r *CommentRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("comment_id = ?", id).Delete(&models.CommentDetailModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete comment details: %w", err)
	}

	result := tx.Delete(&models.CommentModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: id=%d", ticket.ErrCommentNotFound, id)
	}

	return nil
}

func (r *CommentRepository) CountDetails(ctx context.Context, id uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.Model(&models.CommentDetailModel{}).
		Where("comment_id = ?", id).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count comment details: %w", err)
	}

	return count, nil
}

type ChangeDetailRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewChangeDetailRepository(db *gorm.DB) *ChangeDetailRepository {
	return &ChangeDetailRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *ChangeDetailRepository) Save(ctx context.Context, d *ticket.ChangeDetail) error {
	model := r.mapper.DetailToModel(d)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment detail: %w", err)
	}

	return d.SetID(model.ID)
}

func (r *ChangeDetailRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.CommentDetailModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment detail: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("comment detail not found: id=%d", id)
	}

	return nil
}
