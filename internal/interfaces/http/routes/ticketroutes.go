package routes

import (
	"github.com/gin-gonic/gin"

	tickethandlers "github.com/orris-inc/movecomments/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/movecomments/internal/interfaces/http/middleware"
)

type TicketRouteConfig struct {
	TicketHandler     *tickethandlers.Handler
	AuthMiddleware    *middleware.AuthMiddleware
	SearchRateLimiter *middleware.RateLimiter
}

func SetupTicketRoutes(engine *gin.Engine, config *TicketRouteConfig) {
	tickets := engine.Group("/tickets")
	tickets.Use(config.AuthMiddleware.RequireAuth())
	{
		tickets.GET("/search",
			config.SearchRateLimiter.Limit(),
			config.TicketHandler.SearchTickets)
		tickets.GET("/candidates",
			config.TicketHandler.ListCandidateTickets)
	}

	comments := engine.Group("/comments")
	comments.Use(config.AuthMiddleware.RequireAuth())
	{
		comments.POST("/:id/move",
			config.TicketHandler.MoveComment)
	}
}
