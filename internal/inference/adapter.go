package inference

import (
	"context"
	"os"
	"path/filepath"

	"github.com/chordal/inference/internal/classify"
	"github.com/chordal/inference/internal/models"
	"go.uber.org/zap"
)

// OutputFormatJSON is the only recognized output format.
const OutputFormatJSON = "json"

// Options are the logical inputs of one adapter invocation. Exactly one of
// {AudioFile set, FeaturesFile+SpectrogramFile both set} must hold; AudioFile
// wins when both are supplied.
type Options struct {
	AudioFile       string
	FeaturesFile    string
	SpectrogramFile string
	ModelPath       string
	OutputFormat    string

	// StrictModel turns a missing model artifact into NotFoundError.
	// Off, the adapter provisions a zero-byte placeholder instead
	// (lazy provisioning, a testing convenience kept behind this switch).
	StrictModel bool
}

// Adapter fulfills one inference request per invocation: validate, resolve
// the input mode, provision the model artifact, run the engine. No retries;
// one pass and report.
type Adapter struct {
	engine classify.Engine
	logger *zap.Logger
}

// New creates an adapter backed by the given engine.
func New(engine classify.Engine, logger *zap.Logger) *Adapter {
	return &Adapter{engine: engine, logger: logger}
}

// Run validates opts and performs the analysis. Errors are classified: bad
// or contradictory inputs return ValidationError, a missing audio file
// returns NotFoundError, everything else InternalError.
func (a *Adapter) Run(ctx context.Context, opts Options) (*models.AnalysisResponse, error) {
	if opts.OutputFormat != "" && opts.OutputFormat != OutputFormatJSON {
		return nil, validationError("unsupported output format %q (supported: %s)", opts.OutputFormat, OutputFormatJSON)
	}

	if opts.AudioFile == "" && !(opts.FeaturesFile != "" && opts.SpectrogramFile != "") {
		return nil, validationError("Either --audio-file or both --features-file and --spectrogram-file must be provided")
	}

	if opts.ModelPath == "" {
		return nil, validationError("--model-path is required")
	}

	if opts.AudioFile != "" {
		if _, err := os.Stat(opts.AudioFile); err != nil {
			return nil, notFoundError("Audio file not found: %s", opts.AudioFile)
		}
	}

	if _, err := os.Stat(opts.ModelPath); err != nil {
		if opts.StrictModel {
			return nil, notFoundError("Model file not found: %s", opts.ModelPath)
		}
		if err := provisionModel(opts.ModelPath); err != nil {
			return nil, err
		}
		a.logger.Debug("provisioned placeholder model", zap.String("path", opts.ModelPath))
	}

	req := classify.Request{
		AudioPath:       opts.AudioFile,
		FeaturesPath:    opts.FeaturesFile,
		SpectrogramPath: opts.SpectrogramFile,
		ModelPath:       opts.ModelPath,
		FileName:        filepath.Base(firstNonEmpty(opts.AudioFile, opts.FeaturesFile)),
	}
	return a.engine.Analyze(ctx, req)
}

// provisionModel creates a zero-byte placeholder at path, with intermediate
// directories. Idempotent: racing an existing file is not an error.
func provisionModel(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	return f.Close()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
