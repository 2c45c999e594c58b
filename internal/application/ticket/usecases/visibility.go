package usecases

import (
	"context"
	"fmt"

	"github.com/orris-inc/movecomments/internal/domain/ticket"
)

// restrictToVisible narrows criteria to the projects userID may see.
// A nil predicate leaves the criteria unrestricted.
func restrictToVisible(ctx context.Context, visibility ticket.VisibilityPredicate, userID uint, criteria *ticket.TicketSearchCriteria) error {
	if visibility == nil {
		return nil
	}

	ids, all, err := visibility.VisibleProjectIDs(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve visible projects: %w", err)
	}
	if all {
		return nil
	}

	if ids == nil {
		ids = []uint{}
	}
	criteria.ProjectIDs = ids
	return nil
}
