package routes

import (
	"net/http"
	"time"

	"roamify/handlers"
	"roamify/services/geodata"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers the router needs.
type HandlerBundle struct {
	Search      *handlers.SearchHandler
	Diagnostics *handlers.DiagnosticsHandler
}

// RegisterSearchRoutes registers the progressive search endpoints.
func RegisterSearchRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/search")
	{
		api.POST("", hb.Search.StartSearchHandler)
		api.POST("/:sessionID/poll", hb.Search.PollSearchHandler)
	}
}

// RegisterReferenceRoutes exposes the static destination catalog.
func RegisterReferenceRoutes(r *gin.Engine) {
	api := r.Group("/api/cities")
	{
		api.GET("", func(c *gin.Context) {
			c.JSON(http.StatusOK, geodata.Filter(c.Query("region"), c.Query("country")))
		})
	}
}

// RegisterDiagnosticsRoutes exposes cache/limiter internals.
func RegisterDiagnosticsRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/api/diagnostics", hb.Diagnostics.StatsHandler)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Roamify"})
	})
}

// RegisterRoutes sets up CORS and all route groups.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterSearchRoutes(r, hb)
	RegisterReferenceRoutes(r)
	RegisterDiagnosticsRoutes(r, hb)
}
