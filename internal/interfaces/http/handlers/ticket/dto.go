package ticket

import (
	"strconv"

	"github.com/gin-gonic/gin"

	ticketdto "github.com/orris-inc/movecomments/internal/application/ticket/dto"
	"github.com/orris-inc/movecomments/internal/application/ticket/usecases"
	"github.com/orris-inc/movecomments/internal/shared/errors"
)

// MoveCommentRequest carries the target ticket exactly as the user typed it.
type MoveCommentRequest struct {
	NewIssueID string `json:"new_issue_id" binding:"max=64"`
}

func (r *MoveCommentRequest) ToCommand(commentID, actorID uint) usecases.RelocateCommentCommand {
	return usecases.RelocateCommentCommand{
		CommentID:   commentID,
		NewTicketID: r.NewIssueID,
		ActorID:     actorID,
	}
}

// IsEmpty reports a blank target, which leaves the comment in place.
func (r *MoveCommentRequest) IsEmpty() bool {
	return ticketdto.IsBlankTarget(r.NewIssueID)
}

type SearchTicketsRequest struct {
	Term           string
	OnlyCandidates bool
}

func parseSearchTicketsRequest(c *gin.Context) (*SearchTicketsRequest, error) {
	req := &SearchTicketsRequest{
		Term: c.Query("term"),
	}

	if raw := c.Query("only_candidates"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errors.NewValidationError("invalid only_candidates value")
		}
		req.OnlyCandidates = v
	}

	return req, nil
}

func (r *SearchTicketsRequest) ToQuery(userID uint) usecases.SearchTicketsQuery {
	return usecases.SearchTicketsQuery{
		Term:           r.Term,
		UserID:         userID,
		OnlyCandidates: r.OnlyCandidates,
	}
}
