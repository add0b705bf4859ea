package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const (
	healthStatusOK        = "ok"
	healthStatusUnhealthy = "unhealthy"
)

type HealthChecker interface {
	Health() error
}

func RegisterRoutes(router *gin.Engine, handler *Handler, checker HealthChecker) {
	// Wrong verbs reaching a handler path get the 405 contract instead of
	// gin's default 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, messageResponse{Message: "method not allowed"})
	})

	router.POST("/products", handler.CreateProduct)
	router.GET("/products", handler.ListProducts)
	router.GET("/products/:productId", handler.GetProduct)
	router.PATCH("/products/:productId", handler.TouchProduct)
	router.POST("/products/:productId/urls", handler.CreateURL)
	router.GET("/products/:productId/urls", handler.ListURLs)
	router.DELETE("/products/:productId/urls/:productUrlId", handler.DeleteURL)
	router.GET("/urls/:productUrlId/prices", handler.ListPrices)
	router.POST("/urls/:productUrlId/prices", handler.AddPrice)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/healthz", func(c *gin.Context) {
		if err := checker.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": healthStatusUnhealthy})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": healthStatusOK})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
