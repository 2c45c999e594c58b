package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
)

func TestAttachmentRepository_Move(t *testing.T) {
	tests := []struct {
		name        string
		trackOrigin bool
		wantOrigin  *uint
	}{
		{name: "origin tracked", trackOrigin: true, wantOrigin: uintPtr(20)},
		{name: "origin untracked", trackOrigin: false, wantOrigin: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb := setupTestDB(t)
			repo := NewAttachmentRepository(gdb, tt.trackOrigin)
			ctx := context.Background()

			seedTicket(t, gdb, 1, 1, "Source", nil)
			seedTicket(t, gdb, 2, 1, "Target", nil)
			seedAttachment(t, gdb, 77, 1, "log.txt")

			a, err := repo.GetByID(ctx, 77)
			require.NoError(t, err)
			assert.Equal(t, uint(1), a.ContainerID())

			var origin *uint
			if tt.trackOrigin {
				origin = uintPtr(20)
			}
			require.NoError(t, a.MoveTo(2, origin))
			require.NoError(t, repo.Update(ctx, a))

			// Read back with tracking on to see what was actually stored.
			moved, err := NewAttachmentRepository(gdb, true).GetByID(ctx, 77)
			require.NoError(t, err)
			assert.Equal(t, uint(2), moved.ContainerID())
			assert.Equal(t, tt.wantOrigin, moved.CommentID())
			assert.Equal(t, "log.txt", moved.Filename())
		})
	}
}

func TestAttachmentRepository_NotFound(t *testing.T) {
	repo := NewAttachmentRepository(setupTestDB(t), true)

	_, err := repo.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ticket.ErrAttachmentNotFound)
}
