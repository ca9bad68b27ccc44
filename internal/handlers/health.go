package handlers

import (
	"net/http"

	"github.com/chordal/inference/internal/models"
	"github.com/gin-gonic/gin"
)

// ServiceName and ServiceVersion identify this service in health payloads.
const (
	ServiceName    = "classify-api"
	ServiceVersion = "1.0.0"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	engineName string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(engineName string) *HealthHandler {
	return &HealthHandler{engineName: engineName}
}

// InfoResponse represents the service info response
type InfoResponse struct {
	Service          string   `json:"service"`
	Version          string   `json:"version"`
	ModelVersion     string   `json:"model_version"`
	Engine           string   `json:"engine"`
	Endpoints        []string `json:"endpoints"`
	SupportedFormats []string `json:"supported_formats"`
	PredictionFields []string `json:"prediction_fields"`
}

// Health returns basic health status
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}

// Info returns service metadata: version, configured engine and the
// endpoint surface.
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Service:      ServiceName,
		Version:      ServiceVersion,
		ModelVersion: models.ModelVersion,
		Engine:       h.engineName,
		Endpoints: []string{
			"GET /api/health",
			"GET /api/health/info",
			"POST /api/music/analyze",
			"POST /api/music/analyze/upload",
			"POST /api/music/analyze/preprocessed",
		},
		SupportedFormats: []string{"wav", "mp3", "flac", "ogg"},
		PredictionFields: []string{"genre", "mood", "bpm", "key"},
	})
}
