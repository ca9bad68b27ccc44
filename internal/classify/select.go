package classify

import (
	"fmt"

	"github.com/chordal/inference/internal/config"
	"go.uber.org/zap"
)

// ForConfig returns the engine cfg selects: the randomized mock or the
// subprocess engine wrapping the adapter binary. Unknown selectors are an
// error rather than a silent fallback.
func ForConfig(cfg *config.Config, logger *zap.Logger) (Engine, error) {
	switch cfg.Engine {
	case config.EngineMock:
		return NewMock(logger), nil
	case config.EngineScript:
		return NewScript(cfg.InferenceBin, logger), nil
	default:
		return nil, fmt.Errorf("unknown engine %q (supported: %s, %s)", cfg.Engine, config.EngineMock, config.EngineScript)
	}
}
