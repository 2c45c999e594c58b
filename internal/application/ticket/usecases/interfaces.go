package usecases

import (
	"context"

	"github.com/orris-inc/movecomments/internal/application/ticket/dto"
	"github.com/orris-inc/movecomments/internal/domain/ticket"
)

type SearchTicketsExecutor interface {
	Execute(ctx context.Context, query SearchTicketsQuery) ([]dto.TicketSummaryDTO, error)
}

type CandidateTicketsExecutor interface {
	Execute(ctx context.Context, query CandidateTicketsQuery) ([]uint, error)
}

type ListCandidateTicketsExecutor interface {
	Execute(ctx context.Context, query CandidateTicketsQuery) ([]dto.TicketSummaryDTO, error)
}

// CommentRelocator moves a comment and reports the domain outcome.
type CommentRelocator interface {
	Relocate(ctx context.Context, cmd RelocateCommentCommand) (ticket.RelocationResult, error)
}

type RelocateCommentExecutor interface {
	Execute(ctx context.Context, cmd RelocateCommentCommand) (*dto.RelocationResultDTO, error)
}
