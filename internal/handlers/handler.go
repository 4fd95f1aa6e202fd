package handlers

import (
	"net/http"

	"prtracker/internal/logger"
	"prtracker/internal/service"

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
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.sessionMiddleware)
	{
		api.GET("/catalog", h.getCatalog)
		h.registerRecordRoutes(api)
		h.registerStatsRoutes(api)
		h.registerAccountRoutes(api)
		h.registerAdminRoutes(api)
	}
}

func (h *Handler) registerRecordRoutes(api *gin.RouterGroup) {
	wl := api.Group("/weightlifts")
	{
		wl.GET("", h.listWeightlifts)
		wl.POST("", h.createWeightlift)
		wl.PATCH("/:id", h.updateWeightlift)
		wl.DELETE("/:id", h.deleteWeightlift)
	}
	bm := api.Group("/benchmarks")
	{
		bm.GET("", h.listBenchmarks)
		bm.POST("", h.createBenchmark)
		bm.PATCH("/:id", h.updateBenchmark)
		bm.DELETE("/:id", h.deleteBenchmark)
	}
}

func (h *Handler) registerStatsRoutes(api *gin.RouterGroup) {
	api.GET("/prs", h.getPRs)
	progress := api.Group("/progress")
	{
		progress.GET("/weightlifts", h.weightliftProgress)
		progress.GET("/benchmarks", h.benchmarkProgress)
	}
}

func (h *Handler) registerAccountRoutes(api *gin.RouterGroup) {
	me := api.Group("/me")
	{
		me.GET("", h.getMe)
		me.PUT("/password", h.changePassword)
	}
}

func (h *Handler) registerAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	{
		// Coaches may list users; everything else below is admin only.
		admin.GET("/users", h.listUsers)
		admin.POST("/users", h.adminOnly, h.createUser)
		admin.PATCH("/users/:id", h.adminOnly, h.updateUser)
		admin.DELETE("/users/:id", h.adminOnly, h.deleteUser)
		admin.PUT("/users/:id/password", h.adminOnly, h.resetPassword)
		admin.POST("/import", h.adminOnly, h.importLegacy)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
