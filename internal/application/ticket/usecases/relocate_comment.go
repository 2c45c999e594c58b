package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/orris-inc/movecomments/internal/application/ticket/dto"
	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/infrastructure/cache"
	"github.com/orris-inc/movecomments/internal/shared/config"
	"github.com/orris-inc/movecomments/internal/shared/db"
	apperrors "github.com/orris-inc/movecomments/internal/shared/errors"
	"github.com/orris-inc/movecomments/internal/shared/logger"
)

type RelocateCommentCommand struct {
	CommentID uint
	// NewTicketID is the target identifier as the user typed it.
	NewTicketID string
	ActorID     uint
}

// RelocateCommentUseCase moves a comment, with its attachments, to another
// ticket in a single transaction.
type RelocateCommentUseCase struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	detailRepo     ticket.ChangeDetailRepository
	attachmentRepo ticket.AttachmentRepository
	txMgr          *db.TransactionManager
	presenter      *RelocationPresenter
	candidateCache cache.CandidateTicketCache
	visibility     ticket.VisibilityPredicate
	settings       config.MoveCommentsConfig
	logger         logger.Interface
}

func NewRelocateCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	detailRepo ticket.ChangeDetailRepository,
	attachmentRepo ticket.AttachmentRepository,
	txMgr *db.TransactionManager,
	presenter *RelocationPresenter,
	settings config.MoveCommentsConfig,
	logger logger.Interface,
) *RelocateCommentUseCase {
	return &RelocateCommentUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		detailRepo:     detailRepo,
		attachmentRepo: attachmentRepo,
		txMgr:          txMgr,
		presenter:      presenter,
		settings:       settings,
		logger:         logger,
	}
}

// WithCandidateCache makes a successful move drop the comment author's cached
// candidate tickets.
func (uc *RelocateCommentUseCase) WithCandidateCache(candidateCache cache.CandidateTicketCache) *RelocateCommentUseCase {
	uc.candidateCache = candidateCache
	return uc
}

// WithVisibility rejects targets in projects the actor may not see, reporting
// them the same way as a missing ticket.
func (uc *RelocateCommentUseCase) WithVisibility(visibility ticket.VisibilityPredicate) *RelocateCommentUseCase {
	uc.visibility = visibility
	return uc
}

// Execute relocates the comment and presents the outcome.
func (uc *RelocateCommentUseCase) Execute(ctx context.Context, cmd RelocateCommentCommand) (*dto.RelocationResultDTO, error) {
	result, err := uc.Relocate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if !result.IsSuccess() {
		return uc.presenter.Present(result, nil), nil
	}

	moved, err := uc.commentRepo.GetByID(ctx, result.NewCommentID())
	if err != nil {
		uc.logger.Errorw("failed to reload relocated comment", "comment_id", result.NewCommentID(), "error", err)
		return nil, fmt.Errorf("failed to reload relocated comment: %w", err)
	}

	if uc.candidateCache != nil {
		if err := uc.candidateCache.Invalidate(ctx, moved.UserID()); err != nil {
			uc.logger.Warnw("failed to invalidate candidate tickets", "user_id", moved.UserID(), "error", err)
		}
	}

	return uc.presenter.Present(result, moved), nil
}

// Relocate performs the move. An unresolvable target is reported as an
// InvalidTarget result with nothing written; every other failure is an error
// and leaves the store unchanged.
func (uc *RelocateCommentUseCase) Relocate(ctx context.Context, cmd RelocateCommentCommand) (ticket.RelocationResult, error) {
	uc.logger.Infow("executing relocate comment use case",
		"comment_id", cmd.CommentID,
		"target", cmd.NewTicketID,
		"actor_id", cmd.ActorID,
	)

	targetID, ok := ticket.ParseTargetTicketID(cmd.NewTicketID)
	if !ok {
		uc.logger.Warnw("unparseable target ticket", "comment_id", cmd.CommentID, "target", cmd.NewTicketID)
		return ticket.NewInvalidTarget(cmd.NewTicketID), nil
	}

	target, err := uc.ticketRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, ticket.ErrTicketNotFound) {
			uc.logger.Warnw("target ticket not found", "comment_id", cmd.CommentID, "target_ticket_id", targetID)
			return ticket.NewInvalidTarget(cmd.NewTicketID), nil
		}
		uc.logger.Errorw("failed to resolve target ticket", "target_ticket_id", targetID, "error", err)
		return ticket.RelocationResult{}, fmt.Errorf("failed to resolve target ticket: %w", err)
	}

	if uc.visibility != nil {
		visible, err := uc.visibility.CanView(cmd.ActorID, target.ProjectID())
		if err != nil {
			uc.logger.Errorw("failed to check target visibility", "actor_id", cmd.ActorID, "target_ticket_id", targetID, "error", err)
			return ticket.RelocationResult{}, fmt.Errorf("failed to check target visibility: %w", err)
		}
		if !visible {
			uc.logger.Warnw("target ticket not visible to actor",
				"comment_id", cmd.CommentID,
				"target_ticket_id", targetID,
				"actor_id", cmd.ActorID,
			)
			return ticket.NewInvalidTarget(cmd.NewTicketID), nil
		}
	}

	var newCommentID uint
	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		id, err := uc.relocate(txCtx, cmd.CommentID, targetID)
		if err != nil {
			return err
		}
		newCommentID = id
		return nil
	})
	if txErr != nil {
		switch {
		case errors.Is(txErr, ticket.ErrSourceCommentNotFound):
			uc.logger.Errorw("source comment missing", "comment_id", cmd.CommentID, "error", txErr)
			return ticket.RelocationResult{}, apperrors.WrapInternal("source comment does not exist", txErr)
		case errors.Is(txErr, ticket.ErrNothingToRelocate):
			uc.logger.Warnw("comment has nothing to relocate", "comment_id", cmd.CommentID)
			return ticket.RelocationResult{}, apperrors.NewValidationError("comment has nothing to relocate")
		}
		uc.logger.Errorw("failed to relocate comment", "comment_id", cmd.CommentID, "error", txErr)
		return ticket.RelocationResult{}, txErr
	}

	uc.logger.Infow("comment relocated successfully",
		"comment_id", cmd.CommentID,
		"new_comment_id", newCommentID,
		"target_ticket_id", targetID,
	)

	return ticket.NewRelocationSuccess(newCommentID), nil
}

// relocate runs inside the transaction and returns the destination comment id.
func (uc *RelocateCommentUseCase) relocate(ctx context.Context, sourceID, targetID uint) (uint, error) {
	source, err := uc.commentRepo.GetByIDForUpdate(ctx, sourceID)
	if err != nil {
		if errors.Is(err, ticket.ErrCommentNotFound) {
			return 0, fmt.Errorf("%w: id=%d", ticket.ErrSourceCommentNotFound, sourceID)
		}
		return 0, fmt.Errorf("failed to load source comment: %w", err)
	}

	// An emptied source is what a concurrent move leaves behind.
	if source.IsVestigial() {
		return 0, fmt.Errorf("%w: id=%d is empty", ticket.ErrSourceCommentNotFound, sourceID)
	}
	if !source.HasRelocatableContent() {
		return 0, ticket.ErrNothingToRelocate
	}

	destination, err := source.CopyTo(targetID)
	if err != nil {
		return 0, fmt.Errorf("failed to copy comment: %w", err)
	}
	if err := uc.commentRepo.Save(ctx, destination); err != nil {
		return 0, fmt.Errorf("failed to save relocated comment: %w", err)
	}

	moved := 0
	for _, detail := range source.AttachmentDetails() {
		ok, err := uc.moveAttachment(ctx, detail, destination.ID(), targetID)
		if err != nil {
			return 0, err
		}
		if ok {
			moved++
		}
	}

	if !destination.HasNotes() && moved == 0 {
		return 0, ticket.ErrNothingToRelocate
	}

	remaining, err := uc.commentRepo.CountDetails(ctx, sourceID)
	if err != nil {
		return 0, fmt.Errorf("failed to count remaining details: %w", err)
	}

	if remaining == 0 {
		if err := uc.commentRepo.Delete(ctx, sourceID); err != nil {
			return 0, fmt.Errorf("failed to delete source comment: %w", err)
		}
	} else {
		if err := uc.commentRepo.ClearNotes(ctx, sourceID); err != nil {
			return 0, fmt.Errorf("failed to clear source comment notes: %w", err)
		}
	}

	return destination.ID(), nil
}

// moveAttachment carries one attachment detail over to the destination
// comment. A dangling detail is skipped and reported as not moved.
func (uc *RelocateCommentUseCase) moveAttachment(ctx context.Context, detail *ticket.ChangeDetail, destinationID, targetID uint) (bool, error) {
	attachmentID, ok := detail.AttachmentID()
	if !ok {
		uc.logger.Debugw("skipping attachment detail with invalid key", "detail_id", detail.ID(), "prop_key", detail.PropKey())
		return false, nil
	}

	attachment, err := uc.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, ticket.ErrAttachmentNotFound) {
			uc.logger.Debugw("skipping detail for missing attachment", "detail_id", detail.ID(), "attachment_id", attachmentID)
			return false, nil
		}
		return false, fmt.Errorf("failed to load attachment: %w", err)
	}

	var origin *uint
	if uc.settings.AttachmentOriginTracking {
		origin = &destinationID
	}
	if err := attachment.MoveTo(targetID, origin); err != nil {
		return false, fmt.Errorf("failed to move attachment: %w", err)
	}
	if err := uc.attachmentRepo.Update(ctx, attachment); err != nil {
		return false, fmt.Errorf("failed to update attachment: %w", err)
	}

	copied, err := detail.CopyTo(destinationID)
	if err != nil {
		return false, fmt.Errorf("failed to copy attachment detail: %w", err)
	}
	if err := uc.detailRepo.Save(ctx, copied); err != nil {
		return false, fmt.Errorf("failed to save attachment detail: %w", err)
	}
	if err := uc.detailRepo.Delete(ctx, detail.ID()); err != nil {
		return false, fmt.Errorf("failed to delete original attachment detail: %w", err)
	}

	return true, nil
}
