package main

import (
	"github.com/gin-gonic/gin"

	"canteen-system/internal/handlers"
	"canteen-system/internal/middleware"
)

type routerDeps struct {
	auth      *handlers.AuthHandler
	users     *handlers.UserHandler
	items     *handlers.ItemHandler
	orders    *handlers.OrderHandler
	summaries *handlers.SummaryHandler
	backup    *handlers.BackupHandler
}

func setupRouter(deps routerDeps) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	// --- Public API Group ---
	public := r.Group("/api/v1")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.auth.Login)
		}
	}

	// --- Protected API Group ---
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth())
	{
		users := protected.Group("/users")
		{
			users.POST("", deps.users.Create)
			users.GET("", deps.users.List)
			users.GET("/:id", deps.users.Get)
			users.PUT("/:id", deps.users.Update)
			users.DELETE("/:id", deps.users.Delete)
		}

		items := protected.Group("/items")
		{
			items.POST("", deps.items.Create)
			items.GET("", deps.items.List)
			items.GET("/:id", deps.items.Get)
			items.PUT("/:id", deps.items.Update)
			items.POST("/:id/complete", deps.items.Complete)
			items.DELETE("/:id", deps.items.Delete)
		}

		orders := protected.Group("/orders")
		{
			orders.POST("", deps.orders.Create)
			orders.GET("", deps.orders.List)
			orders.GET("/:id", deps.orders.Get)
			orders.PUT("/:id", deps.orders.Update)
			orders.DELETE("/:id", deps.orders.Delete)
		}

		summaries := protected.Group("/summary")
		{
			summaries.GET("/orders", deps.summaries.Orders)
			summaries.GET("/balances", deps.summaries.Balances)
			summaries.GET("/items", deps.summaries.Items)
		}

		backups := protected.Group("/backup")
		{
			backups.GET("/export", deps.backup.Export)
			backups.POST("/import", deps.backup.Import)
		}
	}

	return r
}
