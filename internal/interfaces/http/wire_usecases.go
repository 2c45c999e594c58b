package http

import (
	"github.com/orris-inc/movecomments/internal/application/ticket/usecases"
	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/shared/db"
	"github.com/orris-inc/movecomments/internal/shared/services/markdown"
)

// UseCases groups the application use cases.
type UseCases struct {
	SearchTickets        *usecases.SearchTicketsUseCase
	CandidateTickets     *usecases.CandidateTicketsUseCase
	ListCandidateTickets *usecases.ListCandidateTicketsUseCase
	RelocateComment      *usecases.RelocateCommentUseCase
}

func (c *Container) newUseCases() *UseCases {
	settings := c.cfg.MoveComments
	log := c.log

	// Keep the interfaces nil, not typed-nil, when a backend is disabled.
	var visibility ticket.VisibilityPredicate
	if c.visibility != nil {
		visibility = c.visibility
	}

	candidates := usecases.NewCandidateTicketsUseCase(c.repos.ticketRepo, c.candidateCache, settings, log.Named("usecase.candidate_tickets"))

	relocate := usecases.NewRelocateCommentUseCase(
		c.repos.ticketRepo,
		c.repos.commentRepo,
		c.repos.detailRepo,
		c.repos.attachmentRepo,
		db.NewTransactionManager(c.db),
		usecases.NewRelocationPresenter(markdown.NewMarkdownService(), log.Named("presenter.relocation")),
		settings,
		log.Named("usecase.relocate_comment"),
	)
	if c.candidateCache != nil {
		relocate.WithCandidateCache(c.candidateCache)
	}
	if visibility != nil {
		relocate.WithVisibility(visibility)
	}

	return &UseCases{
		SearchTickets:        usecases.NewSearchTicketsUseCase(c.repos.ticketRepo, visibility, candidates, settings, log.Named("usecase.search_tickets")),
		CandidateTickets:     candidates,
		ListCandidateTickets: usecases.NewListCandidateTicketsUseCase(c.repos.ticketRepo, visibility, candidates, settings, log.Named("usecase.list_candidate_tickets")),
		RelocateComment:      relocate,
	}
}
