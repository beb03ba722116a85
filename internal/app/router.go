// internal/app/router.go
package app

import (
	authHandler "github.com/tomraj007/txnportal/internal/handlers/auth"
	reportHandler "github.com/tomraj007/txnportal/internal/handlers/report"
	"github.com/tomraj007/txnportal/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler    *authHandler.AuthHandler
	ReportHandler  *reportHandler.ReportHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupRouter wires the gateway routes.
func SetupRouter(r *gin.Engine, h *Handlers) {
	api := r.Group("/api/gateway")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public: login is the only unauthenticated endpoint.
	api.POST("/usermgt/UserAccountManager/login", h.AuthHandler.Login)

	// Bearer-protected report routes.
	report := api.Group("/report")
	report.Use(h.AuthMiddleware.Auth())
	{
		report.POST("/TransactionReport", h.ReportHandler.TransactionReport)
	}
}
