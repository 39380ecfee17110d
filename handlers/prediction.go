package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"housing-prediction-api/features"
	"housing-prediction-api/metrics"
	"housing-prediction-api/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const historyPageTTL = 30 * time.Second

type PredictionHandler struct {
	predictor *services.Predictor
	history   services.HistoryStore
	cache     *services.CacheService
	log       logrus.FieldLogger
}

func NewPredictionHandler(predictor *services.Predictor, history services.HistoryStore, cache *services.CacheService, log logrus.FieldLogger) *PredictionHandler {
	return &PredictionHandler{predictor: predictor, history: history, cache: cache, log: log}
}

type PredictionResponse struct {
	Input   features.RawInput         `json:"input"`
	Result  services.PredictionResult `json:"result"`
	Display ResultView                `json:"display"`
}

// Create runs the pipeline for a JSON body with the same fields as the form.
func (h *PredictionHandler) Create(c *gin.Context) {
	var in features.RawInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
		return
	}

	res := h.predictor.Predict(c.Request.Context(), in)
	c.JSON(http.StatusOK, PredictionResponse{
		Input:   in,
		Result:  res,
		Display: NewResultView(res),
	})
}

// List pages through stored predictions, newest first.
func (h *PredictionHandler) List(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "prediction history is disabled"})
		return
	}

	p, err := ParsePagination(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Only cursor pages are cached. The first page grows with every
	// prediction served.
	cacheable := p.Before != nil && h.cache.Available()
	var cacheKey string
	if cacheable {
		cacheKey = fmt.Sprintf("history:%d:%s", p.Limit, p.Before.Format(time.RFC3339Nano))
		var cached CursorResponse
		if found, err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	rows, err := h.history.List(c.Request.Context(), p.Limit+1, p.Before)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database query failed"})
		return
	}

	hasMore := len(rows) > p.Limit
	if hasMore {
		rows = rows[:p.Limit]
	}

	var nextCursor string
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].TS.Format(time.RFC3339Nano)
	}

	resp := CursorResponse{Data: rows, NextCursor: nextCursor, HasMore: hasMore}
	if cacheable {
		go h.storePage(cacheKey, resp)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PredictionHandler) storePage(key string, resp CursorResponse) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := h.cache.Set(ctx, key, resp, historyPageTTL); err != nil {
		metrics.SideChannelFailures.WithLabelValues(metrics.ChannelCache).Inc()
		h.log.WithError(err).WithField("channel", metrics.ChannelCache).Warn("history page cache write failed")
	}
}
