package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/movecomments/internal/application/ticket/dto"
	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/shared/config"
	"github.com/orris-inc/movecomments/internal/shared/constants"
	"github.com/orris-inc/movecomments/internal/shared/logger"
)

type SearchTicketsQuery struct {
	Term   string
	UserID uint
	// OnlyCandidates restricts hits to the actor's candidate tickets when a
	// candidate source is configured.
	OnlyCandidates bool
}

type SearchTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	visibility ticket.VisibilityPredicate
	candidates CandidateTicketsExecutor
	settings   config.MoveCommentsConfig
	logger     logger.Interface
}

// NewSearchTicketsUseCase creates the ticket finder. visibility and
// candidates may be nil.
func NewSearchTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	visibility ticket.VisibilityPredicate,
	candidates CandidateTicketsExecutor,
	settings config.MoveCommentsConfig,
	logger logger.Interface,
) *SearchTicketsUseCase {
	return &SearchTicketsUseCase{
		ticketRepo: ticketRepo,
		visibility: visibility,
		candidates: candidates,
		settings:   settings,
		logger:     logger,
	}
}

func (uc *SearchTicketsUseCase) Execute(ctx context.Context, query SearchTicketsQuery) ([]dto.TicketSummaryDTO, error) {
	if !uc.settings.EnableSearch {
		return []dto.TicketSummaryDTO{}, nil
	}

	term := ticket.ParseSearchTerm(query.Term)
	criteria := ticket.TicketSearchCriteria{
		IncludeProjectName: uc.settings.IncludeProjectName,
		Limit:              constants.MaxSearchResults,
	}

	switch term.Kind {
	case ticket.SearchByID:
		id := term.ID
		criteria.TicketID = &id
	case ticket.SearchBySubject:
		criteria.SubjectContains = ticket.FoldSubject(term.Subject)
	default:
		return []dto.TicketSummaryDTO{}, nil
	}

	if err := restrictToVisible(ctx, uc.visibility, query.UserID, &criteria); err != nil {
		uc.logger.Errorw("failed to apply ticket visibility", "user_id", query.UserID, "error", err)
		return nil, err
	}

	if query.OnlyCandidates && uc.candidates != nil && uc.settings.CandidatesEnabled() {
		ids, err := uc.candidates.Execute(ctx, CandidateTicketsQuery{UserID: query.UserID})
		if err != nil {
			return nil, fmt.Errorf("failed to load candidate tickets: %w", err)
		}
		if ids == nil {
			ids = []uint{}
		}
		criteria.CandidateIDs = ids
	}

	summaries, err := uc.ticketRepo.Search(ctx, criteria)
	if err != nil {
		uc.logger.Errorw("failed to search tickets", "user_id", query.UserID, "error", err)
		return nil, fmt.Errorf("failed to search tickets: %w", err)
	}

	uc.logger.Debugw("ticket search completed",
		"user_id", query.UserID,
		"kind", term.Kind,
		"hits", len(summaries),
	)

	return dto.ToTicketSummaryDTOs(summaries), nil
}
