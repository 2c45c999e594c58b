package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
	"github.com/orris-inc/movecomments/internal/infrastructure/persistence/models"
	"github.com/orris-inc/movecomments/internal/shared/constants"
)

func seedSearchFixture(t *testing.T, repo *TicketRepository) {
	db := repo.db
	seedProject(t, db, 1, "Website")
	seedProject(t, db, 2, "Billing")
	seedTicket(t, db, 101, 1, "Login page broken", nil)
	seedTicket(t, db, 102, 1, "Logout button misaligned", uintPtr(7))
	seedTicket(t, db, 103, 2, "Invoice LOGIN reminder", uintPtr(7))
	seedTicket(t, db, 104, 2, "100% discount_code", nil)
}

func summaryIDs(summaries []*ticket.TicketSummary) []uint {
	ids := make([]uint, len(summaries))
	for i, s := range summaries {
		ids[i] = s.ID
	}
	return ids
}

func TestTicketRepository_GetByID(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedSearchFixture(t, repo)

	t.Run("existing ticket", func(t *testing.T) {
		tk, err := repo.GetByID(ctx, 102)
		require.NoError(t, err)
		assert.Equal(t, "Logout button misaligned", tk.Subject())
		require.NotNil(t, tk.AssigneeID())
		assert.Equal(t, uint(7), *tk.AssigneeID())
	})

	t.Run("missing ticket", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 999)
		assert.ErrorIs(t, err, ticket.ErrTicketNotFound)
	})
}

func TestTicketRepository_Search(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedSearchFixture(t, repo)

	tests := []struct {
		name     string
		criteria ticket.TicketSearchCriteria
		want     []uint
	}{
		{
			name:     "subject substring is case-insensitive",
			criteria: ticket.TicketSearchCriteria{SubjectContains: "login", Limit: 15},
			want:     []uint{101, 103},
		},
		{
			name:     "by id",
			criteria: ticket.TicketSearchCriteria{TicketID: uintPtr(103), Limit: 15},
			want:     []uint{103},
		},
		{
			name:     "limit keeps lowest ids",
			criteria: ticket.TicketSearchCriteria{SubjectContains: "lo", Limit: 2},
			want:     []uint{101, 102},
		},
		{
			name:     "wildcards match literally",
			criteria: ticket.TicketSearchCriteria{SubjectContains: "100%", Limit: 15},
			want:     []uint{104},
		},
		{
			name:     "underscore matches literally",
			criteria: ticket.TicketSearchCriteria{SubjectContains: "t_c", Limit: 15},
			want:     []uint{104},
		},
		{
			name:     "percent alone does not match everything",
			criteria: ticket.TicketSearchCriteria{SubjectContains: "%%", Limit: 15},
			want:     []uint{},
		},
		{
			name:     "project restriction",
			criteria: ticket.TicketSearchCriteria{SubjectContains: "login", ProjectIDs: []uint{2}, Limit: 15},
			want:     []uint{103},
		},
		{
			name:     "empty project restriction matches nothing",
			criteria: ticket.TicketSearchCriteria{SubjectContains: "login", ProjectIDs: []uint{}, Limit: 15},
			want:     []uint{},
		},
		{
			name:     "candidate restriction",
			criteria: ticket.TicketSearchCriteria{SubjectContains: "lo", CandidateIDs: []uint{102, 103}, Limit: 15},
			want:     []uint{102, 103},
		},
		{
			name:     "zero limit",
			criteria: ticket.TicketSearchCriteria{SubjectContains: "login"},
			want:     []uint{},
		},
		{
			name:     "missing id",
			criteria: ticket.TicketSearchCriteria{TicketID: uintPtr(999), Limit: 15},
			want:     []uint{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.criteria)
			require.NoError(t, err)
			assert.Equal(t, tt.want, summaryIDs(got))
		})
	}
}

func TestTicketRepository_Search_UnicodeSubjects(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	seedProject(t, gdb, 1, "Website")
	seedTicket(t, gdb, 201, 1, "Ärger mit Übersetzung", nil)
	seedTicket(t, gdb, 202, 1, "Straße gesperrt", nil)
	seedTicket(t, gdb, 203, 1, "ΣΦΆΛΜΑ στο μενού", nil)

	tests := []struct {
		term string
		want []uint
	}{
		{term: "ärger", want: []uint{201}},
		{term: "ÜBERSETZUNG", want: []uint{201}},
		{term: "STRASSE", want: []uint{202}},
		{term: "σφάλμα", want: []uint{203}},
		{term: "Μενού", want: []uint{203}},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := repo.Search(ctx, ticket.TicketSearchCriteria{
				SubjectContains: ticket.FoldSubject(tt.term),
				Limit:           15,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, summaryIDs(got))
		})
	}

	t.Run("folded subject follows renames", func(t *testing.T) {
		var model models.TicketModel
		require.NoError(t, gdb.First(&model, 201).Error)
		model.Subject = "Ölwechsel"
		require.NoError(t, gdb.Save(&model).Error)

		got, err := repo.Search(ctx, ticket.TicketSearchCriteria{SubjectContains: ticket.FoldSubject("ÖL"), Limit: 15})
		require.NoError(t, err)
		assert.Equal(t, []uint{201}, summaryIDs(got))

		got, err = repo.Search(ctx, ticket.TicketSearchCriteria{SubjectContains: ticket.FoldSubject("ärger"), Limit: 15})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestTicketRepository_Search_CapsAtLimitInIDOrder(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()
	seedProject(t, gdb, 1, "Website")
	// inserted out of id order
	for id := uint(40); id >= 21; id-- {
		seedTicket(t, gdb, id, 1, fmt.Sprintf("Crash report %d", id), nil)
	}

	got, err := repo.Search(ctx, ticket.TicketSearchCriteria{
		SubjectContains: ticket.FoldSubject("crash"),
		Limit:           constants.MaxSearchResults,
	})
	require.NoError(t, err)

	want := make([]uint, 0, constants.MaxSearchResults)
	for id := uint(21); id < 21+uint(constants.MaxSearchResults); id++ {
		want = append(want, id)
	}
	assert.Equal(t, want, summaryIDs(got))
}

func TestTicketRepository_Search_ProjectName(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedSearchFixture(t, repo)

	t.Run("included on request", func(t *testing.T) {
		got, err := repo.Search(ctx, ticket.TicketSearchCriteria{
			TicketID:           uintPtr(103),
			IncludeProjectName: true,
			Limit:              15,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.NotNil(t, got[0].ProjectName)
		assert.Equal(t, "Billing", *got[0].ProjectName)
		assert.Equal(t, "Invoice LOGIN reminder", got[0].Subject)
	})

	t.Run("omitted by default", func(t *testing.T) {
		got, err := repo.Search(ctx, ticket.TicketSearchCriteria{TicketID: uintPtr(103), Limit: 15})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Nil(t, got[0].ProjectName)
	})
}

func TestTicketRepository_ListIDsCommentedBy(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedSearchFixture(t, repo)

	seedComment(t, repo.db, 1, 103, 5, strPtr("first"))
	seedComment(t, repo.db, 2, 103, 5, strPtr("second"))
	seedComment(t, repo.db, 3, 101, 5, strPtr("hello"))
	seedComment(t, repo.db, 4, 102, 5, strPtr(""))
	seedComment(t, repo.db, 5, 104, 5, nil)
	seedComment(t, repo.db, 6, 104, 6, strPtr("someone else"))

	ids, err := repo.ListIDsCommentedBy(ctx, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{101, 103}, ids)

	ids, err = repo.ListIDsCommentedBy(ctx, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{101}, ids)
}

func TestTicketRepository_ListIDsAssignedTo(t *testing.T) {
	repo := NewTicketRepository(setupTestDB(t))
	ctx := context.Background()
	seedSearchFixture(t, repo)

	ids, err := repo.ListIDsAssignedTo(ctx, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{102, 103}, ids)

	ids, err = repo.ListIDsAssignedTo(ctx, 8, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
