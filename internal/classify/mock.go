package classify

import (
	"context"
	"math"
	"math/rand"

	"github.com/chordal/inference/internal/models"
	"go.uber.org/zap"
)

// Mock is the randomized stand-in engine. It produces schema-conformant
// output with every field drawn independently from its contract range, so
// downstream consumers exercise the same shapes a real model would emit.
// Processing time is reported, not spent.
type Mock struct {
	logger *zap.Logger
}

// NewMock creates a mock engine.
func NewMock(logger *zap.Logger) *Mock {
	return &Mock{logger: logger}
}

// Analyze returns a randomized response inside the contract bounds.
func (m *Mock) Analyze(ctx context.Context, req Request) (*models.AnalysisResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bpm := roundTo1(uniform(models.BPMValue))

	resp := &models.AnalysisResponse{
		Predictions: models.Predictions{
			Genre: models.PredictionField{
				Label:      pick(models.Genres),
				Confidence: uniform(models.GenreConfidence),
			},
			Mood: models.PredictionField{
				Label:      pick(models.Moods),
				Confidence: uniform(models.MoodConfidence),
			},
			BPM: models.PredictionField{
				Value:      &bpm,
				Confidence: uniform(models.BPMConfidence),
			},
			Key: models.PredictionField{
				Label:      pick(models.Keys),
				Confidence: uniform(models.KeyConfidence),
			},
		},
		Metadata: models.Metadata{
			ModelVersion:          models.ModelVersion,
			ProcessingTimeSeconds: uniform(models.ProcessingTime),
			AudioDurationSeconds:  uniform(models.AudioDuration),
		},
	}

	m.logger.Debug("mock analysis complete",
		zap.String("file", req.FileName),
		zap.String("genre", resp.Predictions.Genre.Label),
		zap.Float64("bpm", bpm),
	)

	return resp, nil
}

func uniform(r models.Range) float64 {
	return r.Min + rand.Float64()*(r.Max-r.Min)
}

func pick(labels []string) string {
	return labels[rand.Intn(len(labels))]
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
