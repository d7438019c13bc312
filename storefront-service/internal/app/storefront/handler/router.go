package handler

import (
	"net/http"
	"time"

	"qkart/pkg/logger"
	"qkart/pkg/metrics"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRoutes настраивает маршруты витрины
func SetupRoutes(h *StorefrontHandler, sessionMW *SessionMiddleware) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware("storefront-service"))

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "storefront-service",
		})
	})

	// Prometheus метрики
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		products := api.Group("/products")
		{
			products.GET("", h.GetProducts)
			products.GET("/categories", h.GetCategories)
			products.PUT("/filter", h.SetFilter)
			products.GET("/search", h.SearchProducts)
			products.POST("/search/input", h.QueueSearch)
		}

		cart := api.Group("/cart")
		cart.Use(sessionMW.Resolve())
		{
			cart.GET("", h.GetCart)
			cart.POST("", h.AddToCart)
			cart.PUT("", h.UpdateQuantity)
			cart.GET("/summary", h.GetSummary)
			cart.POST("/items/:id/increment", h.IncrementItem)
			cart.POST("/items/:id/decrement", h.DecrementItem)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Login)
			auth.POST("/logout", sessionMW.Resolve(), h.Logout)
		}
	}

	return router
}
