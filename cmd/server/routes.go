package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"charityhub.backend/internal/domain/entities"
	"charityhub.backend/internal/interfaces/http/handlers"
	"charityhub.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler         *handlers.AuthHandler
	agentHandler        *handlers.AgentHandler
	purchaseHandler     *handlers.PurchaseHandler
	verificationHandler *handlers.VerificationHandler
	authMiddleware      gin.HandlerFunc
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
		}

		// Agent routes
		agents := v1.Group("/agents")
		agents.Use(d.authMiddleware)
		{
			agents.GET("/available", d.agentHandler.ListAvailableAgents)
			agents.GET("/me", middleware.RequireRole(string(entities.UserRoleAgent)), d.agentHandler.GetMyAgentProfile)
			agents.GET("/commissions", middleware.RequireRole(string(entities.UserRoleAgent)), d.agentHandler.ListMyCommissions)
		}

		// Coin purchase routes (protected)
		purchases := v1.Group("/purchases")
		purchases.Use(d.authMiddleware)
		{
			purchases.POST("", middleware.IdempotencyMiddleware(), d.purchaseHandler.CreatePurchase)
			purchases.GET("/mine", d.purchaseHandler.ListMyPurchases)
			purchases.GET("/pending", middleware.RequireRole(string(entities.UserRoleAgent)), d.purchaseHandler.ListPendingPurchases)
			purchases.GET("/:id", d.purchaseHandler.GetPurchase)
			purchases.POST("/:id/confirm-payment", d.purchaseHandler.ConfirmPayment)
			purchases.POST("/:id/confirm-receipt", middleware.RequireRole(string(entities.UserRoleAgent)), d.purchaseHandler.ConfirmReceipt)
		}

		// Verification routes (protected)
		verifications := v1.Group("/verifications")
		verifications.Use(d.authMiddleware)
		{
			verifications.POST("", d.verificationHandler.SubmitVerification)
			verifications.GET("/mine", d.verificationHandler.ListMyVerifications)
			verifications.GET("/pending", middleware.RequireRole(string(entities.UserRoleAgent)), d.verificationHandler.ListPendingVerifications)
			verifications.POST("/:id/decide", middleware.RequireRole(string(entities.UserRoleAgent)), d.verificationHandler.DecideVerification)
		}
	}
}
