package mappers

import (
	"fmt"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/models"
	"github.com/orris-inc/movecomments/internal/shared/biztime"
	"github.com/orris-inc/movecomments/internal/shared/constants"
)

// TicketMapper handles the conversion between ticket-context domain entities and persistence models.
type TicketMapper interface {
	// TicketToDomain converts a ticket persistence model to a domain entity.
	TicketToDomain(model *models.TicketModel) (*ticket.Ticket, error)

	// CommentToModel converts a comment to its persistence model. Details are not included.
	CommentToModel(c *ticket.Comment) *models.CommentModel

	// CommentToDomain converts a comment model and its detail rows to a domain entity.
	CommentToDomain(model *models.CommentModel, details []models.CommentDetailModel) (*ticket.Comment, error)

	// DetailToModel converts a change detail to its persistence model.
	DetailToModel(d *ticket.ChangeDetail) *models.CommentDetailModel

	// AttachmentToModel converts an attachment to its persistence model.
	AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel

	// AttachmentToDomain converts an attachment persistence model to a domain entity.
	AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error)

	// SummaryToDomain converts a search projection row to a summary.
	SummaryToDomain(row *models.TicketSummaryRow) *ticket.TicketSummary
}

// TicketMapperImpl is the concrete implementation of TicketMapper.
type TicketMapperImpl struct{}

// NewTicketMapper creates a new TicketMapper.
func NewTicketMapper() TicketMapper {
	return &TicketMapperImpl{}
}

func (m *TicketMapperImpl) TicketToDomain(model *models.TicketModel) (*ticket.Ticket, error) {
	return ticket.ReconstructTicket(
		model.ID,
		model.Subject,
		model.ProjectID,
		model.AuthorID,
		model.AssigneeID,
		biztime.FromUnixMilli(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) CommentToModel(c *ticket.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:           c.ID(),
		TicketID:     c.TicketID(),
		UserID:       c.UserID(),
		Notes:        c.Notes(),
		PrivateNotes: c.PrivateNotes(),
		CreatedAt:    c.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) CommentToDomain(model *models.CommentModel, details []models.CommentDetailModel) (*ticket.Comment, error) {
	domainDetails := make([]*ticket.ChangeDetail, 0, len(details))
	for i := range details {
		d, err := ticket.ReconstructChangeDetail(
			details[i].ID,
			details[i].CommentID,
			ticket.PropertyKind(details[i].Property),
			details[i].PropKey,
			details[i].OldValue,
			details[i].Value,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to map comment detail (id=%d): %w", details[i].ID, err)
		}
		domainDetails = append(domainDetails, d)
	}

	return ticket.ReconstructComment(
		model.ID,
		model.TicketID,
		model.UserID,
		model.Notes,
		model.PrivateNotes,
		biztime.FromUnixMilli(model.CreatedAt),
		domainDetails,
	)
}

func (m *TicketMapperImpl) DetailToModel(d *ticket.ChangeDetail) *models.CommentDetailModel {
	return &models.CommentDetailModel{
		ID:        d.ID(),
		CommentID: d.CommentID(),
		Property:  d.Property().String(),
		PropKey:   d.PropKey(),
		OldValue:  d.OldValue(),
		Value:     d.Value(),
	}
}

func (m *TicketMapperImpl) AttachmentToModel(a *ticket.Attachment) *models.AttachmentModel {
	return &models.AttachmentModel{
		ID:            a.ID(),
		ContainerID:   a.ContainerID(),
		ContainerType: constants.ContainerTypeTicket,
		CommentID:     a.CommentID(),
		Filename:      a.Filename(),
		Filesize:      a.Filesize(),
		ContentType:   a.ContentType(),
		AuthorID:      a.AuthorID(),
		CreatedAt:     a.CreatedAt().UnixMilli(),
	}
}

func (m *TicketMapperImpl) AttachmentToDomain(model *models.AttachmentModel) (*ticket.Attachment, error) {
	return ticket.ReconstructAttachment(
		model.ID,
		model.ContainerID,
		model.CommentID,
		model.Filename,
		model.Filesize,
		model.ContentType,
		model.AuthorID,
		biztime.FromUnixMilli(model.CreatedAt),
	)
}

func (m *TicketMapperImpl) SummaryToDomain(row *models.TicketSummaryRow) *ticket.TicketSummary {
	return &ticket.TicketSummary{
		ID:          row.ID,
		Subject:     row.Subject,
		ProjectName: row.ProjectName,
	}
}
