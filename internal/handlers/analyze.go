package handlers

import (
	"encoding/base64"
	"net/http"
	"os"
	"path/filepath"

	"github.com/chordal/inference/internal/classify"
	"github.com/chordal/inference/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalyzeHandler handles the music analysis endpoints. Uploaded audio is
// staged in a scratch directory for the duration of one request and removed
// before the response is written.
type AnalyzeHandler struct {
	engine     classify.Engine
	scratchDir string
	modelPath  string
	logger     *zap.Logger
}

// NewAnalyzeHandler creates an analyze handler staging files under scratchDir.
func NewAnalyzeHandler(engine classify.Engine, scratchDir, modelPath string, logger *zap.Logger) (*AnalyzeHandler, error) {
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		return nil, err
	}
	return &AnalyzeHandler{
		engine:     engine,
		scratchDir: scratchDir,
		modelPath:  modelPath,
		logger:     logger,
	}, nil
}

// AnalyzeRequest is the JSON body for the inline-audio endpoint.
type AnalyzeRequest struct {
	AudioData string `json:"audioData" binding:"required"`
	FileName  string `json:"fileName"`
	Format    string `json:"format"`
}

// AnalyzeJSON handles POST /api/music/analyze: base64 audio inline in a
// JSON body.
func (h *AnalyzeHandler) AnalyzeJSON(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	audio, err := base64.StdEncoding.DecodeString(req.AudioData)
	if err != nil {
		middleware.BadRequest(c, "audioData is not valid base64")
		return
	}

	name := req.FileName
	if name == "" {
		name = "audio." + orDefault(req.Format, "wav")
	}

	path := h.scratchPath(name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		h.logger.Error("failed to stage audio", zap.Error(err))
		middleware.InternalError(c, "failed to stage audio data")
		return
	}
	defer os.Remove(path)

	h.analyze(c, classify.Request{
		AudioPath: path,
		ModelPath: h.modelPath,
		FileName:  name,
	})
}

// AnalyzeUpload handles POST /api/music/analyze/upload: audio as a
// multipart file field named "file".
func (h *AnalyzeHandler) AnalyzeUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		middleware.BadRequest(c, "multipart field \"file\" is required")
		return
	}

	path := h.scratchPath(file.Filename)
	if err := c.SaveUploadedFile(file, path); err != nil {
		h.logger.Error("failed to stage upload", zap.Error(err))
		middleware.InternalError(c, "failed to stage uploaded file")
		return
	}
	defer os.Remove(path)

	h.analyze(c, classify.Request{
		AudioPath: path,
		ModelPath: h.modelPath,
		FileName:  file.Filename,
	})
}

// AnalyzePreprocessed handles POST /api/music/analyze/preprocessed: the
// caller supplies paths to precomputed feature and spectrogram artifacts.
func (h *AnalyzeHandler) AnalyzePreprocessed(c *gin.Context) {
	featuresPath := c.Query("featuresPath")
	spectrogramPath := c.Query("spectrogramPath")
	if featuresPath == "" || spectrogramPath == "" {
		middleware.BadRequest(c, "featuresPath and spectrogramPath query parameters are required")
		return
	}

	for _, p := range []string{featuresPath, spectrogramPath} {
		if _, err := os.Stat(p); err != nil {
			middleware.BadRequest(c, "preprocessed artifact not found: "+p)
			return
		}
	}

	h.analyze(c, classify.Request{
		FeaturesPath:    featuresPath,
		SpectrogramPath: spectrogramPath,
		ModelPath:       h.modelPath,
		FileName:        c.Query("fileName"),
	})
}

func (h *AnalyzeHandler) analyze(c *gin.Context, req classify.Request) {
	resp, err := h.engine.Analyze(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("analysis failed",
			zap.String("file", req.FileName),
			zap.Error(err),
		)
		middleware.AnalysisFailed(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// scratchPath builds a collision-free staging path, keeping the original
// extension so the engine can see the container format.
func (h *AnalyzeHandler) scratchPath(name string) string {
	return filepath.Join(h.scratchDir, uuid.New().String()+filepath.Ext(name))
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
