package classify

import (
	"testing"

	"github.com/chordal/inference/internal/config"
	"go.uber.org/zap"
)

func TestForConfig(t *testing.T) {
	cases := []struct {
		name    string
		engine  string
		want    any
		wantErr bool
	}{
		{"mock", config.EngineMock, &Mock{}, false},
		{"script", config.EngineScript, &Script{}, false},
		{"unknown", "tensor-magic", nil, true},
	}

	for _, tc := range cases {
		cfg := &config.Config{Engine: tc.engine, InferenceBin: "./inference"}
		engine, err := ForConfig(cfg, zap.NewNop())

		if tc.wantErr {
			if err == nil {
				t.Errorf("%s: expected error, got %T", tc.name, engine)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: ForConfig failed: %v", tc.name, err)
			continue
		}

		switch tc.want.(type) {
		case *Mock:
			if _, ok := engine.(*Mock); !ok {
				t.Errorf("%s: engine is %T, want *Mock", tc.name, engine)
			}
		case *Script:
			if _, ok := engine.(*Script); !ok {
				t.Errorf("%s: engine is %T, want *Script", tc.name, engine)
			}
		}
	}
}
