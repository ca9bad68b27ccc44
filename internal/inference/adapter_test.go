package inference

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/chordal/inference/internal/classify"
	"go.uber.org/zap"
)

func newTestAdapter() *Adapter {
	return New(classify.NewMock(zap.NewNop()), zap.NewNop())
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "song.wav")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatalf("failed to write audio fixture: %v", err)
	}
	return path
}

func kindOf(t *testing.T, err error) string {
	t.Helper()
	var classified *Error
	if !errors.As(err, &classified) {
		t.Fatalf("error %v is not a classified adapter error", err)
	}
	return classified.Kind
}

func TestRunModeASucceeds(t *testing.T) {
	adapter := newTestAdapter()
	audio := writeAudio(t)
	model := filepath.Join(t.TempDir(), "model.pth")

	resp, err := adapter.Run(context.Background(), Options{AudioFile: audio, ModelPath: model})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := resp.Validate(); err != nil {
		t.Errorf("response not conformant: %v", err)
	}
}

func TestRunModeBSucceeds(t *testing.T) {
	adapter := newTestAdapter()
	dir := t.TempDir()

	resp, err := adapter.Run(context.Background(), Options{
		FeaturesFile:    filepath.Join(dir, "features.json"),
		SpectrogramFile: filepath.Join(dir, "spectrogram.npy"),
		ModelPath:       filepath.Join(dir, "model.pth"),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := resp.Validate(); err != nil {
		t.Errorf("response not conformant: %v", err)
	}
}

func TestRunRejectsMissingInputMode(t *testing.T) {
	adapter := newTestAdapter()

	cases := []struct {
		name string
		opts Options
	}{
		{"nothing supplied", Options{ModelPath: "model.pth"}},
		{"features without spectrogram", Options{FeaturesFile: "f.json", ModelPath: "model.pth"}},
		{"spectrogram without features", Options{SpectrogramFile: "s.npy", ModelPath: "model.pth"}},
	}

	for _, tc := range cases {
		_, err := adapter.Run(context.Background(), tc.opts)
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if kind := kindOf(t, err); kind != KindValidation {
			t.Errorf("%s: kind = %s, want %s", tc.name, kind, KindValidation)
		}
	}
}

func TestRunRejectsMissingAudio(t *testing.T) {
	adapter := newTestAdapter()

	_, err := adapter.Run(context.Background(), Options{
		AudioFile: filepath.Join(t.TempDir(), "no-such.wav"),
		ModelPath: filepath.Join(t.TempDir(), "model.pth"),
	})
	if err == nil {
		t.Fatal("expected error for missing audio file")
	}
	if kind := kindOf(t, err); kind != KindNotFound {
		t.Errorf("kind = %s, want %s", kind, KindNotFound)
	}
}

func TestRunProvisionsMissingModel(t *testing.T) {
	adapter := newTestAdapter()
	audio := writeAudio(t)
	model := filepath.Join(t.TempDir(), "nested", "dir", "model.pth")

	if _, err := adapter.Run(context.Background(), Options{AudioFile: audio, ModelPath: model}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	info, err := os.Stat(model)
	if err != nil {
		t.Fatalf("placeholder model not created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("placeholder model size = %d, want 0", info.Size())
	}

	// Idempotent: a second run against the now-existing model behaves the same.
	if _, err := adapter.Run(context.Background(), Options{AudioFile: audio, ModelPath: model}); err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
}

func TestRunStrictModelFailsWhenMissing(t *testing.T) {
	adapter := newTestAdapter()
	audio := writeAudio(t)
	model := filepath.Join(t.TempDir(), "model.pth")

	_, err := adapter.Run(context.Background(), Options{AudioFile: audio, ModelPath: model, StrictModel: true})
	if err == nil {
		t.Fatal("expected error in strict mode")
	}
	if kind := kindOf(t, err); kind != KindNotFound {
		t.Errorf("kind = %s, want %s", kind, KindNotFound)
	}
	if _, statErr := os.Stat(model); !os.IsNotExist(statErr) {
		t.Error("strict mode must not provision a placeholder model")
	}
}

func TestRunRejectsUnsupportedOutputFormat(t *testing.T) {
	adapter := newTestAdapter()
	audio := writeAudio(t)
	model := filepath.Join(t.TempDir(), "model.pth")

	_, err := adapter.Run(context.Background(), Options{AudioFile: audio, ModelPath: model, OutputFormat: "xml"})
	if err == nil {
		t.Fatal("expected error for unsupported output format")
	}
	if kind := kindOf(t, err); kind != KindValidation {
		t.Errorf("kind = %s, want %s", kind, KindValidation)
	}

	// Rejected at the boundary: no analysis side effect may have happened.
	if _, statErr := os.Stat(model); !os.IsNotExist(statErr) {
		t.Error("format rejection must precede model provisioning")
	}
}

func TestAsErrorResponse(t *testing.T) {
	resp := AsErrorResponse(validationError("bad input"))
	if resp.Type != KindValidation || resp.Error != "bad input" {
		t.Errorf("unexpected payload: %+v", resp)
	}

	resp = AsErrorResponse(errors.New("disk exploded"))
	if resp.Type != KindInternal {
		t.Errorf("unclassified error type = %s, want %s", resp.Type, KindInternal)
	}
}
