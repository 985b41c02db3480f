package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/crime-analytics-go/internal/config"
	"github.com/jengzang/crime-analytics-go/internal/handler"
	"github.com/jengzang/crime-analytics-go/internal/middleware"
	"github.com/jengzang/crime-analytics-go/internal/service"
)

// SetupRouter builds the gin engine with middleware and analytics routes.
// Background work started for the router ends when ctx is done.
func SetupRouter(ctx context.Context, cfg *config.Config, h *handler.AnalyticsHandler) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Crime analytics API is running",
		})
	})

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(ctx, cfg.RateLimit, time.Minute), middleware.Auth(cfg.JWTSecret))
	{
		crimes := api.Group("/crimes")
		{
			crimes.GET("/describe-categorical", h.DescribeCategorical)
			crimes.GET("/describe-numeric", h.DescribeNumeric)
			crimes.GET("/hour", h.Distribution(service.DistributionHour))
			crimes.GET("/month", h.Distribution(service.DistributionMonth))
			crimes.GET("/station", h.Distribution(service.DistributionSeason))
			crimes.GET("/season", h.Distribution(service.DistributionSeason))
			crimes.GET("/day-of-week", h.Distribution(service.DistributionDayOfWeek))
			crimes.GET("/points", h.Points)
			crimes.GET("/tree", h.Tree)
			crimes.GET("/total_filtered", h.TotalFiltered)
		}

		tweets := api.Group("/tweets")
		{
			tweets.GET("/boxplot", h.Boxplot)
			tweets.GET("/scatter", h.Scatter)
		}
	}

	return r
}
