package handlers

import (
	"net/http"

	"housing-prediction-api/artifacts"
	"housing-prediction-api/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Dependencies are the process-wide components the routes are built from.
// Cache and History may be nil.
type Dependencies struct {
	Bundle    *artifacts.Bundle
	Predictor *services.Predictor
	Cache     *services.CacheService
	History   services.HistoryStore
	Log       logrus.FieldLogger
}

func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.SetHTMLTemplate(Templates())

	form := NewFormHandler(deps.Predictor)
	router.GET("/", form.Show)
	router.POST("/", form.Submit)

	router.GET("/health", Health(deps))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/ws/predictions", LiveFeed(deps.Cache, deps.Log))

	predictions := NewPredictionHandler(deps.Predictor, deps.History, deps.Cache, deps.Log)
	api := router.Group("/api/v1")
	api.POST("/predictions", predictions.Create)
	api.GET("/predictions", predictions.List)
}

func Health(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":             "UP",
			"message":            "Housing Price Prediction API is running",
			"features":           deps.Bundle.Schema.Len(),
			"confidence_entries": deps.Bundle.Confidence.Len(),
			"cache":              deps.Cache.Available(),
			"history":            deps.History != nil,
		})
	}
}
