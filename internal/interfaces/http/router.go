package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/orris-inc/movecomments/docs"
	tickethandlers "github.com/orris-inc/movecomments/internal/interfaces/http/handlers/ticket"
	"github.com/orris-inc/movecomments/internal/interfaces/http/middleware"
	"github.com/orris-inc/movecomments/internal/interfaces/http/routes"
	"github.com/orris-inc/movecomments/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	engine        *gin.Engine
	container     *Container
	ticketHandler *tickethandlers.Handler
}

// NewRouter creates the gin engine and handlers over a wired container.
func NewRouter(container *Container) *Router {
	ucs := container.UseCases()

	return &Router{
		engine:    gin.New(),
		container: container,
		ticketHandler: tickethandlers.NewHandler(
			ucs.SearchTickets,
			ucs.ListCandidateTickets,
			ucs.RelocateComment,
			container.log.Named("handler.ticket"),
		),
	}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.CustomLogger(r.container.log.Named("http")))
	r.engine.Use(middleware.Recovery(r.container.log))

	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.engine.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, "ok", nil)
	})

	routes.SetupTicketRoutes(r.engine, &routes.TicketRouteConfig{
		TicketHandler:     r.ticketHandler,
		AuthMiddleware:    r.container.authMiddleware,
		SearchRateLimiter: r.container.searchLimiter,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Shutdown releases the container's resources.
func (r *Router) Shutdown() {
	r.container.Shutdown()
}
