package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/movecomments/internal/application/ticket/dto"
	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/shared/config"
	"github.com/orris-inc/movecomments/internal/shared/logger"
)

// ListCandidateTicketsUseCase presents the actor's candidate tickets as
// summaries, dropping any the actor may not see.
type ListCandidateTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	visibility ticket.VisibilityPredicate
	candidates CandidateTicketsExecutor
	settings   config.MoveCommentsConfig
	logger     logger.Interface
}

func NewListCandidateTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	visibility ticket.VisibilityPredicate,
	candidates CandidateTicketsExecutor,
	settings config.MoveCommentsConfig,
	logger logger.Interface,
) *ListCandidateTicketsUseCase {
	return &ListCandidateTicketsUseCase{
		ticketRepo: ticketRepo,
		visibility: visibility,
		candidates: candidates,
		settings:   settings,
		logger:     logger,
	}
}

func (uc *ListCandidateTicketsUseCase) Execute(ctx context.Context, query CandidateTicketsQuery) ([]dto.TicketSummaryDTO, error) {
	ids, err := uc.candidates.Execute(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []dto.TicketSummaryDTO{}, nil
	}

	criteria := ticket.TicketSearchCriteria{
		CandidateIDs:       ids,
		IncludeProjectName: uc.settings.IncludeProjectName,
		Limit:              len(ids),
	}
	if err := restrictToVisible(ctx, uc.visibility, query.UserID, &criteria); err != nil {
		uc.logger.Errorw("failed to apply ticket visibility", "user_id", query.UserID, "error", err)
		return nil, err
	}

	summaries, err := uc.ticketRepo.Search(ctx, criteria)
	if err != nil {
		uc.logger.Errorw("failed to load candidate tickets", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to load candidate tickets: %w", err)
	}

	return dto.ToTicketSummaryDTOs(summaries), nil
}
