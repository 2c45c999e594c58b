package usecases

import (
	"fmt"
	"time"

	"github.com/orris-inc/movecomments/internal/application/ticket/dto"
	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/shared/biztime"
	"github.com/orris-inc/movecomments/internal/shared/constants"
	"github.com/orris-inc/movecomments/internal/shared/logger"
	"github.com/orris-inc/movecomments/internal/shared/services/markdown"
)

// RelocationPresenter turns a relocation result into its user-facing form.
type RelocationPresenter struct {
	markdown markdown.MarkdownService
	logger   logger.Interface
}

func NewRelocationPresenter(markdownService markdown.MarkdownService, logger logger.Interface) *RelocationPresenter {
	return &RelocationPresenter{
		markdown: markdownService,
		logger:   logger,
	}
}

// Present builds the DTO. moved is the destination comment and is only read
// on success.
func (p *RelocationPresenter) Present(result ticket.RelocationResult, moved *ticket.Comment) *dto.RelocationResultDTO {
	if result.IsInvalidTarget() {
		return &dto.RelocationResultDTO{
			Status:          dto.StatusInvalidTarget,
			WrongNewIssueID: result.RawInput(),
			Message:         constants.ErrMsgInvalidTarget,
		}
	}

	out := &dto.RelocationResultDTO{
		Status:       dto.StatusMoved,
		NewCommentID: result.NewCommentID(),
	}
	if moved == nil {
		out.Message = "Comment moved"
		return out
	}

	out.TargetTicketID = moved.TicketID()
	out.CommentedAt = biztime.ToBizTimezone(moved.CreatedAt()).Format(time.RFC3339)
	out.Message = fmt.Sprintf("Comment moved to %s%d", ticket.IDMarker, moved.TicketID())

	if moved.HasNotes() {
		html, err := p.markdown.ToHTMLSanitized(moved.NotesText())
		if err != nil {
			// The move itself succeeded; only the preview is lost.
			p.logger.Warnw("failed to render relocated notes", "comment_id", moved.ID(), "error", err)
		} else {
			out.NotesHTML = html
		}
	}

	return out
}
