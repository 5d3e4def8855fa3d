package routes

import (
	"net/http"
	"time"

	"padelwatch/handlers"
	"padelwatch/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAvailabilityRoutes registers the on-demand query surface.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/availability")
	{
		api.GET("", hb.CheckAvailabilityHandler)
	}
}

// RegisterSubscriptionRoutes registers alert management endpoints.
func RegisterSubscriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/subscriptions")
	{
		api.POST("", hb.CreateSubscriptionHandler)
		api.GET("", hb.ListSubscriptionsHandler)
		api.DELETE("/:id", hb.DeleteSubscriptionHandler)
	}
}

// RegisterMonitorRoutes registers the manual monitor trigger.
func RegisterMonitorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/monitor")
	{
		api.POST("/run", hb.RunMonitorHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAvailabilityRoutes(r, hb)
	RegisterSubscriptionRoutes(r, hb)
	RegisterMonitorRoutes(r, hb)
	RegisterHealthRoute(r)
}
