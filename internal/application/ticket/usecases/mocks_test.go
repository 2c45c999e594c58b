package usecases

import (
	"context"
	"time"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
)

type mockTicketRepository struct {
	GetByIDFunc            func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	SearchFunc             func(ctx context.Context, criteria ticket.TicketSearchCriteria) ([]*ticket.TicketSummary, error)
	ListIDsCommentedByFunc func(ctx context.Context, userID uint, limit int) ([]uint, error)
	ListIDsAssignedToFunc  func(ctx context.Context, userID uint, limit int) ([]uint, error)
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) Search(ctx context.Context, criteria ticket.TicketSearchCriteria) ([]*ticket.TicketSummary, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, criteria)
	}
	return nil, nil
}

func (m *mockTicketRepository) ListIDsCommentedBy(ctx context.Context, userID uint, limit int) ([]uint, error) {
	if m.ListIDsCommentedByFunc != nil {
		return m.ListIDsCommentedByFunc(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockTicketRepository) ListIDsAssignedTo(ctx context.Context, userID uint, limit int) ([]uint, error) {
	if m.ListIDsAssignedToFunc != nil {
		return m.ListIDsAssignedToFunc(ctx, userID, limit)
	}
	return nil, nil
}

type mockVisibility struct {
	VisibleProjectIDsFunc func(ctx context.Context, userID uint) ([]uint, bool, error)
	CanViewFunc           func(userID, projectID uint) (bool, error)
}

func (m *mockVisibility) VisibleProjectIDs(ctx context.Context, userID uint) ([]uint, bool, error) {
	if m.VisibleProjectIDsFunc != nil {
		return m.VisibleProjectIDsFunc(ctx, userID)
	}
	return nil, true, nil
}

func (m *mockVisibility) CanView(userID, projectID uint) (bool, error) {
	if m.CanViewFunc != nil {
		return m.CanViewFunc(userID, projectID)
	}
	return true, nil
}

type mockCandidateTickets struct {
	ExecuteFunc func(ctx context.Context, query CandidateTicketsQuery) ([]uint, error)
}

func (m *mockCandidateTickets) Execute(ctx context.Context, query CandidateTicketsQuery) ([]uint, error) {
	if m.ExecuteFunc != nil {
		return m.ExecuteFunc(ctx, query)
	}
	return []uint{}, nil
}

type mockCandidateCache struct {
	GetFunc        func(ctx context.Context, userID uint) ([]uint, bool, error)
	SetFunc        func(ctx context.Context, userID uint, ids []uint, ttl time.Duration) error
	InvalidateFunc func(ctx context.Context, userID uint) error
}

func (m *mockCandidateCache) Get(ctx context.Context, userID uint) ([]uint, bool, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, userID)
	}
	return nil, false, nil
}

func (m *mockCandidateCache) Set(ctx context.Context, userID uint, ids []uint, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, userID, ids, ttl)
	}
	return nil
}

func (m *mockCandidateCache) Invalidate(ctx context.Context, userID uint) error {
	if m.InvalidateFunc != nil {
		return m.InvalidateFunc(ctx, userID)
	}
	return nil
}

// faultyCommentRepository wraps a real repository and fails selected calls.
type faultyCommentRepository struct {
	ticket.CommentRepository
	ClearNotesErr error
	DeleteErr     error
}

func (r *faultyCommentRepository) ClearNotes(ctx context.Context, commentID uint) error {
	if r.ClearNotesErr != nil {
		return r.ClearNotesErr
	}
	return r.CommentRepository.ClearNotes(ctx, commentID)
}

func (r *faultyCommentRepository) Delete(ctx context.Context, commentID uint) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	return r.CommentRepository.Delete(ctx, commentID)
}

// faultyDetailRepository wraps a real repository and fails detail deletes.
type faultyDetailRepository struct {
	ticket.ChangeDetailRepository
	DeleteErr error
}

func (r *faultyDetailRepository) Delete(ctx context.Context, detailID uint) error {
	if r.DeleteErr != nil {
		return r.DeleteErr
	}
	return r.ChangeDetailRepository.Delete(ctx, detailID)
}
