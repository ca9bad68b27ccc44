package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/chordal/inference/internal/models"
	"go.uber.org/zap"
)

// Script runs the inference adapter binary as a subprocess, one invocation
// per request, and decodes its stdout/stderr per the process contract:
// AnalysisResponse JSON on stdout with exit 0, ErrorResponse JSON on stderr
// with exit 1.
type Script struct {
	bin    string
	logger *zap.Logger
}

// NewScript creates an engine backed by the adapter binary at bin.
func NewScript(bin string, logger *zap.Logger) *Script {
	return &Script{bin: bin, logger: logger}
}

// Analyze invokes the adapter once and parses its output. Adapter-reported
// errors come back with the adapter's error type prefixed so handlers can
// log the classification without re-parsing stderr.
func (s *Script) Analyze(ctx context.Context, req Request) (*models.AnalysisResponse, error) {
	args := []string{"-model-path", req.ModelPath}
	if req.AudioPath != "" {
		args = append(args, "-audio-file", req.AudioPath)
	} else {
		args = append(args, "-features-file", req.FeaturesPath, "-spectrogram-file", req.SpectrogramPath)
	}

	cmd := exec.CommandContext(ctx, s.bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	s.logger.Debug("invoking inference adapter",
		zap.String("bin", s.bin),
		zap.Strings("args", args),
	)

	if err := cmd.Run(); err != nil {
		var procErr models.ErrorResponse
		raw := strings.TrimSpace(stderr.String())
		if jsonErr := json.Unmarshal([]byte(raw), &procErr); jsonErr == nil && procErr.Error != "" {
			return nil, fmt.Errorf("%s: %s", procErr.Type, procErr.Error)
		}
		return nil, fmt.Errorf("inference adapter failed: %w", err)
	}

	var resp models.AnalysisResponse
	if err := json.Unmarshal(stdout.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("inference adapter produced invalid output: %w", err)
	}
	return &resp, nil
}
