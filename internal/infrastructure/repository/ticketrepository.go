package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/models"
	db "github.com/orris-inc/movecomments/internal/shared/db"
)

// likeEscape is the LIKE escape character. Backslash is avoided because
// MySQL and SQLite disagree on how it is written inside a string literal.
const likeEscape = "!"

var likeEscaper = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

var _ ticket.TicketRepository = (*TicketRepository)(nil)

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id=%d", ticket.ErrTicketNotFound, id)
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.TicketToDomain(&model)
}

// Search runs a bounded ticket search. SubjectContains must already be
// passed through ticket.FoldSubject; it is matched literally against the
// stored folded subject.
func (r *TicketRepository) Search(ctx context.Context, c ticket.TicketSearchCriteria) ([]*ticket.TicketSummary, error) {
	if c.Limit <= 0 {
		return []*ticket.TicketSummary{}, nil
	}
	if (c.ProjectIDs != nil && len(c.ProjectIDs) == 0) || (c.CandidateIDs != nil && len(c.CandidateIDs) == 0) {
		return []*ticket.TicketSummary{}, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if c.IncludeProjectName {
		query = query.
			Select("tickets.id, tickets.subject, projects.name AS project_name").
			Joins("LEFT JOIN projects ON projects.id = tickets.project_id")
	} else {
		query = query.Select("tickets.id, tickets.subject")
	}

	if c.TicketID != nil {
		query = query.Where("tickets.id = ?", *c.TicketID)
	}
	if c.SubjectContains != "" {
		pattern := "%" + likeEscaper.Replace(c.SubjectContains) + "%"
		query = query.Where("tickets.subject_folded LIKE ? ESCAPE '"+likeEscape+"'", pattern)
	}
	if c.ProjectIDs != nil {
		query = query.Where("tickets.project_id IN ?", c.ProjectIDs)
	}
	if c.CandidateIDs != nil {
		query = query.Where("tickets.id IN ?", c.CandidateIDs)
	}

	var rows []models.TicketSummaryRow
	if err := query.
		Scopes(db.OrderByIDAsc("tickets")).
		Limit(c.Limit).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to search tickets: %w", err)
	}

	summaries := make([]*ticket.TicketSummary, len(rows))
	for i := range rows {
		summaries[i] = r.mapper.SummaryToDomain(&rows[i])
	}

	return summaries, nil
}

func (r *TicketRepository) ListIDsCommentedBy(ctx context.Context, userID uint, limit int) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	commented := tx.Model(&models.CommentModel{}).
		Select("ticket_id").
		Where("user_id = ?", userID).
		Where("notes IS NOT NULL AND notes <> ''")

	var ids []uint
	if err := tx.Model(&models.TicketModel{}).
		Where("id IN (?)", commented).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list commented tickets: %w", err)
	}

	return ids, nil
}

func (r *TicketRepository) ListIDsAssignedTo(ctx context.Context, userID uint, limit int) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var ids []uint
	if err := tx.Model(&models.TicketModel{}).
		Where("assignee_id = ?", userID).
		Order("id ASC").
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list assigned tickets: %w", err)
	}

	return ids, nil
}
