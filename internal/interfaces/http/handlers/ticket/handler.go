package ticket

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ticketdto "github.com/orris-inc/movecomments/internal/application/ticket/dto"
	"github.com/orris-inc/movecomments/internal/application/ticket/usecases"
	"github.com/orris-inc/movecomments/internal/shared/errors"
	"github.com/orris-inc/movecomments/internal/shared/logger"
	"github.com/orris-inc/movecomments/internal/shared/utils"
)

type Handler struct {
	searchTicketsUC    usecases.SearchTicketsExecutor
	candidateTicketsUC usecases.ListCandidateTicketsExecutor
	relocateCommentUC  usecases.RelocateCommentExecutor
	logger             logger.Interface
}

func NewHandler(
	searchTicketsUC usecases.SearchTicketsExecutor,
	candidateTicketsUC usecases.ListCandidateTicketsExecutor,
	relocateCommentUC usecases.RelocateCommentExecutor,
	logger logger.Interface,
) *Handler {
	return &Handler{
		searchTicketsUC:    searchTicketsUC,
		candidateTicketsUC: candidateTicketsUC,
		relocateCommentUC:  relocateCommentUC,
		logger:             logger,
	}
}

// SearchTickets handles GET /tickets/search
// @Summary Find target tickets
// @Description Look up tickets by id, #id or subject fragment, restricted to projects the user can see
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Param term query string false "Ticket id, #id or subject fragment"
// @Param only_candidates query bool false "Restrict to the user's candidate tickets"
// @Success 200 {object} utils.APIResponse{data=[]ticketdto.TicketSummaryDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Failure 429 {object} utils.APIResponse
// @Router /tickets/search [get]
func (h *Handler) SearchTickets(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	req, err := parseSearchTicketsRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.searchTicketsUC.Execute(c.Request.Context(), req.ToQuery(userID))
	if err != nil {
		h.logger.Errorw("failed to search tickets", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ListCandidateTickets handles GET /tickets/candidates
// @Summary List candidate target tickets
// @Tags Tickets
// @Produce json
// @Security Bearer
// @Success 200 {object} utils.APIResponse{data=[]ticketdto.TicketSummaryDTO}
// @Failure 401 {object} utils.APIResponse
// @Router /tickets/candidates [get]
func (h *Handler) ListCandidateTickets(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.candidateTicketsUC.Execute(c.Request.Context(), usecases.CandidateTicketsQuery{UserID: userID})
	if err != nil {
		h.logger.Errorw("failed to list candidate tickets", "user_id", userID, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// MoveComment handles POST /comments/:id/move
// @Summary Move a comment to another ticket
// @Tags Comments
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path int true "Comment ID"
// @Param request body MoveCommentRequest true "Target ticket"
// @Success 200 {object} utils.APIResponse{data=ticketdto.RelocationResultDTO}
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse{data=ticketdto.RelocationResultDTO}
// @Failure 500 {object} utils.APIResponse
// @Router /comments/{id}/move [post]
func (h *Handler) MoveComment(c *gin.Context) {
	userID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	commentID, err := utils.ParseUintParam(c, "id", "comment")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req MoveCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for move comment", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if req.IsEmpty() {
		utils.SuccessResponse(c, http.StatusOK, "", ticketdto.NewUnchangedResult())
		return
	}

	result, err := h.relocateCommentUC.Execute(c.Request.Context(), req.ToCommand(commentID, userID))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if result.Status == ticketdto.StatusInvalidTarget {
		c.JSON(http.StatusUnprocessableEntity, utils.APIResponse{
			Success: false,
			Data:    result,
			Message: result.Message,
		})
		return
	}

	utils.SuccessResponse(c, http.StatusOK, result.Message, result)
}
