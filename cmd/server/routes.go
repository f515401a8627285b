package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"lendcore.backend/internal/domain/entities"
	"lendcore.backend/internal/interfaces/http/handlers"
	"lendcore.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	loanHandler    *handlers.LoanHandler
	paymentHandler *handlers.PaymentHandler
	adminHandler   *handlers.AdminHandler
	roleHandler    *handlers.RoleHandler
	supportHandler *handlers.SupportHandler
	authMiddleware gin.HandlerFunc
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
			auth.POST("/verify-code", d.authHandler.VerifyCode)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.POST("/set-new-password", d.authHandler.SetNewPassword)
		}

		// Current user routes (protected)
		me := v1.Group("/users/me")
		me.Use(d.authMiddleware)
		{
			me.GET("", d.userHandler.GetProfile)
			me.PATCH("", d.userHandler.UpdateProfile)
			me.PATCH("/security", d.userHandler.UpdateSecurity)
			me.POST("/change-password", d.userHandler.ChangePassword)
			me.DELETE("", d.userHandler.DeleteAccount)
		}

		v1.GET("/users/:userId/loans", d.authMiddleware,
			middleware.RequirePermission(entities.OpLoanRead), d.loanHandler.ListForUser)

		// Loan routes (protected)
		loans := v1.Group("/loans")
		loans.Use(d.authMiddleware)
		{
			loans.POST("", middleware.RequirePermission(entities.OpLoanApply), d.loanHandler.Apply)
			loans.GET("", middleware.RequirePermission(entities.OpLoanRead), d.loanHandler.ListMine)
			loans.GET("/:id", middleware.RequirePermission(entities.OpLoanRead), d.loanHandler.Get)
			loans.POST("/topup", middleware.RequirePermission(entities.OpLoanTopUp), d.loanHandler.TopUp)
			loans.POST("/:id/topup", middleware.RequirePermission(entities.OpLoanTopUp), d.loanHandler.TopUp)
			loans.POST("/:id/liquidate", middleware.RequirePermission(entities.OpLoanLiquidate), d.loanHandler.Liquidate)

			loans.POST("/:id/payments", middleware.RequirePermission(entities.OpPaymentRecord), middleware.IdempotencyMiddleware(), d.paymentHandler.Record)
			loans.GET("/:id/payments", middleware.RequirePermission(entities.OpPaymentRead), d.paymentHandler.History)
			loans.GET("/:id/statement", middleware.RequirePermission(entities.OpPaymentRead), d.paymentHandler.Statement)
			loans.GET("/:id/balance", middleware.RequirePermission(entities.OpPaymentRead), d.paymentHandler.Balance)
		}

		// Flat payment routes; same handlers, loan named in body or query
		payments := v1.Group("/payments")
		payments.Use(d.authMiddleware)
		{
			payments.POST("", middleware.RequirePermission(entities.OpPaymentRecord), middleware.IdempotencyMiddleware(), d.paymentHandler.Record)
			payments.GET("/statement", middleware.RequirePermission(entities.OpPaymentRead), d.paymentHandler.Statement)
			payments.GET("/:loanId", middleware.RequirePermission(entities.OpPaymentRead), d.paymentHandler.History)
		}

		// Support routes (protected)
		support := v1.Group("/support")
		support.Use(d.authMiddleware, middleware.RequirePermission(entities.OpSupportUse))
		{
			support.POST("/contact", d.supportHandler.Contact)
			support.POST("/chats", d.supportHandler.StartChat)
			support.POST("/chats/:id/messages", d.supportHandler.Reply)
			support.GET("/chats/:id/messages", d.supportHandler.Messages)
			support.DELETE("/chats/:id", d.supportHandler.DeleteChat)
		}

		// Admin routes (protected)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware)
		{
			users := admin.Group("/users", middleware.RequirePermission(entities.OpUserManage))
			{
				users.GET("", d.adminHandler.ListUsers)
				users.GET("/:id", d.adminHandler.GetUser)
				users.PATCH("/:id/active", d.adminHandler.SetUserActive)
				users.PATCH("/:id/role", d.adminHandler.AssignUserRole)
				users.PATCH("/:id/security", d.adminHandler.UpdateUserSecurity)
				users.GET("/:id/loans", d.adminHandler.ListUserLoans)
			}

			adminLoans := admin.Group("/loans")
			{
				adminLoans.PATCH("/:id/status", middleware.RequirePermission(entities.OpLoanStatus), d.adminHandler.UpdateLoanStatus)
				adminLoans.GET("/reports", middleware.RequirePermission(entities.OpLoanReports), d.adminHandler.LoanReports)
			}

			roles := admin.Group("/roles", middleware.RequirePermission(entities.OpRoleManage))
			{
				roles.POST("", d.roleHandler.Create)
				roles.GET("", d.roleHandler.List)
				roles.DELETE("/:id", d.roleHandler.Delete)
			}
		}
	}
}
