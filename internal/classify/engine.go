package classify

import (
	"context"

	"github.com/chordal/inference/internal/models"
)

// Request carries one analysis job. Either AudioPath or both FeaturesPath
// and SpectrogramPath are set; callers resolve that before reaching an
// engine.
type Request struct {
	AudioPath       string
	FeaturesPath    string
	SpectrogramPath string
	ModelPath       string
	FileName        string
}

// Engine is the pluggable analysis capability. The contract layer never
// assumes a particular implementation: the mock engine and the
// subprocess-backed engine are interchangeable, and a real model-backed
// engine slots in the same way.
type Engine interface {
	Analyze(ctx context.Context, req Request) (*models.AnalysisResponse, error)
}
