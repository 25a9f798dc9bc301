package handlers

import (
	"bloglist/internal/logger"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// Test/ops-only baseline reset
	router.POST("/api/testing/reset", h.resetState)

	// Live ranked-list feed over WebSocket — same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
		// Logout parses the bearer token itself instead of going through
		// the middleware: a second logout must stay a 200, not a 401.
		auth.POST("/logout", h.logout)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerBlogRoutes(api)
		h.registerEventRoutes(api)
	}
}

func (h *Handler) registerBlogRoutes(api *gin.RouterGroup) {
	blogs := api.Group("/blogs")
	{
		blogs.GET("", h.listBlogs)
		blogs.POST("", h.createBlog)
		blogs.POST("/:id/like", h.likeBlog)
		blogs.DELETE("/:id", h.deleteBlog)
	}
}

func (h *Handler) registerEventRoutes(api *gin.RouterGroup) {
	events := api.Group("/events")
	{
		events.GET("", h.getEvents)
	}
}
