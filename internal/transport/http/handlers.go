package httpapi

import (
	"net/http"

	"calmcast/internal/bundle"
	"calmcast/internal/feature"
	"calmcast/internal/tips"

	"github.com/gin-gonic/gin"
)

var routeList = []string{
	"/", "/health", "/model", "/predict", "/get-tip", "/get-tip-batch", "/tips/static",
}

func registerRoutes(router *gin.Engine, cfg ServerConfig) {
	router.GET("/", handleRoot)
	router.GET("/health", handleHealth(cfg.Predictor))
	router.GET("/model", handleModel(cfg.Predictor, cfg.Bundle))
	router.POST("/predict", handlePredict(cfg.Predictor))

	guarded := router.Group("/", apiKeyAuth(cfg.TipAPIKey))
	guarded.POST("/get-tip", handleTip(cfg.Tips))
	guarded.POST("/get-tip-batch", handleTipBatch(cfg.Tips))

	if cfg.Bank != nil {
		router.GET("/tips/static", handleStaticTips(cfg.Bank))
	}
}

func handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, rootResponse{OK: true, Service: "calmcast", Routes: routeList})
}

func handleHealth(p Predictor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, healthResponse{
			OK:           true,
			ModelLoaded:  true,
			ModelVersion: p.Version(),
		})
	}
}

func handleModel(p Predictor, b *bundle.Bundle) gin.HandlerFunc {
	return func(c *gin.Context) {
		m := p.Manifest()
		resp := modelResponse{
			Numeric: m.Numeric,
			Trigger: m.Trigger,
			Version: p.Version(),
		}
		if b != nil {
			resp.Metrics = b.Metrics
			resp.NTrain = b.NTrain
			resp.NTest = b.NTest
			resp.TrainedAt = b.TrainedAt
			resp.RunID = b.RunID
		}
		c.JSON(http.StatusOK, resp)
	}
}

// handlePredict maps any featurization or inference error to a client
// error; the process never 5xxes on a bad check-in.
func handlePredict(p Predictor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var checkin feature.CheckIn
		if err := c.ShouldBindJSON(&checkin); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
		score, err := p.Predict(checkin)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusOK, predictResponse{PredictedAnxiety: score})
	}
}

func handleTip(t TipProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tips.TipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, tipResponse{Tip: t.SingleTip(c.Request.Context(), req)})
	}
}

func handleTipBatch(t TipProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req tips.TipRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, tipsResponse{Tips: t.BatchTips(c.Request.Context(), req)})
	}
}

func handleStaticTips(bank *tips.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, bank.Snapshot())
	}
}
