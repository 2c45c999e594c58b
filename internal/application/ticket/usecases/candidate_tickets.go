package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/infrastructure/cache"
	"github.com/orris-inc/movecomments/internal/shared/config"
	"github.com/orris-inc/movecomments/internal/shared/constants"
	"github.com/orris-inc/movecomments/internal/shared/logger"
	"github.com/orris-inc/movecomments/internal/shared/utils/setutil"
)

type CandidateTicketsQuery struct {
	UserID uint
}

// CandidateTicketsUseCase lists the tickets an actor is likely to move a
// comment to: tickets they commented on and tickets assigned to them.
type CandidateTicketsUseCase struct {
	ticketRepo ticket.TicketRepository
	cache      cache.CandidateTicketCache
	settings   config.MoveCommentsConfig
	logger     logger.Interface
}

// NewCandidateTicketsUseCase creates the use case. cache may be nil.
func NewCandidateTicketsUseCase(
	ticketRepo ticket.TicketRepository,
	candidateCache cache.CandidateTicketCache,
	settings config.MoveCommentsConfig,
	logger logger.Interface,
) *CandidateTicketsUseCase {
	return &CandidateTicketsUseCase{
		ticketRepo: ticketRepo,
		cache:      candidateCache,
		settings:   settings,
		logger:     logger,
	}
}

func (uc *CandidateTicketsUseCase) limit() int {
	if uc.settings.CandidateLimit > 0 {
		return uc.settings.CandidateLimit
	}
	return constants.DefaultCandidateLimit
}

func (uc *CandidateTicketsUseCase) Execute(ctx context.Context, query CandidateTicketsQuery) ([]uint, error) {
	if !uc.settings.CandidatesEnabled() {
		return []uint{}, nil
	}

	if uc.cache != nil {
		ids, hit, err := uc.cache.Get(ctx, query.UserID)
		if err != nil {
			uc.logger.Warnw("candidate cache read failed, querying store", "user_id", query.UserID, "error", err)
		} else if hit {
			return ids, nil
		}
	}

	limit := uc.limit()
	set := setutil.NewUintSet()

	if uc.settings.ShowUserTickets {
		ids, err := uc.ticketRepo.ListIDsCommentedBy(ctx, query.UserID, limit)
		if err != nil {
			uc.logger.Errorw("failed to list commented tickets", "user_id", query.UserID, "error", err)
			return nil, fmt.Errorf("failed to list commented tickets: %w", err)
		}
		set.AddAll(ids)
	}

	if uc.settings.ShowAssignedTickets {
		ids, err := uc.ticketRepo.ListIDsAssignedTo(ctx, query.UserID, limit)
		if err != nil {
			uc.logger.Errorw("failed to list assigned tickets", "user_id", query.UserID, "error", err)
			return nil, fmt.Errorf("failed to list assigned tickets: %w", err)
		}
		set.AddAll(ids)
	}

	result := set.Sorted()
	if len(result) > limit {
		result = result[:limit]
	}

	if uc.cache != nil && uc.settings.CandidateCacheTTL() > 0 {
		if err := uc.cache.Set(ctx, query.UserID, result, uc.settings.CandidateCacheTTL()); err != nil {
			uc.logger.Warnw("failed to cache candidate tickets", "user_id", query.UserID, "error", err)
		}
	}

	return result, nil
}
