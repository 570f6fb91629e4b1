package routes

import (
	"net/http"
	"time"

	"github.com/itelsaia/agente-itelsa-ia/handlers"
	"github.com/itelsaia/agente-itelsa-ia/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates the handlers wired in main.
type HandlerBundle struct {
	Chat  *handlers.ChatHandler
	Admin *handlers.AdminHandler
}

// RegisterWebhookRoutes registers the messaging platform endpoints.
func RegisterWebhookRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/webhook", hb.Chat.VerifyWebhookHandler)
	r.POST("/webhook", hb.Chat.HandleMessageHandler)
}

// RegisterAdminRoutes sets up endpoints for operator insights.
func RegisterAdminRoutes(r *gin.Engine, hb *HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.AdminAuthMiddleware())
		adminGroup.GET("/stats", hb.Admin.GetStatsHandler)
		adminGroup.GET("/appointments/:email", hb.Admin.GetUserAppointmentsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Agente ITELSA IA",
			"status":  "running",
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterWebhookRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}
