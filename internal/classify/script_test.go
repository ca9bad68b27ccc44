package classify

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fakeAdapter writes a shell script standing in for the inference binary.
func fakeAdapter(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-script adapter stub requires a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "inference")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("failed to write adapter stub: %v", err)
	}
	return path
}

func TestScriptParsesAdapterOutput(t *testing.T) {
	out := `{"predictions":{"genre":{"label":"jazz","confidence":0.8},"mood":{"label":"calm","confidence":0.7},"bpm":{"value":90.5,"confidence":0.9},"key":{"label":"F#","confidence":0.6}},"metadata":{"model_version":"1.0.0","processing_time_seconds":1.2,"audio_duration_seconds":200}}`
	engine := NewScript(fakeAdapter(t, "echo '"+out+"'"), zap.NewNop())

	resp, err := engine.Analyze(context.Background(), Request{AudioPath: "song.mp3", ModelPath: "model.pth"})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if resp.Predictions.Genre.Label != "jazz" {
		t.Errorf("genre = %q, want jazz", resp.Predictions.Genre.Label)
	}
	if err := resp.Validate(); err != nil {
		t.Errorf("parsed response not conformant: %v", err)
	}
}

func TestScriptSurfacesAdapterErrors(t *testing.T) {
	engine := NewScript(fakeAdapter(t, `echo '{"error":"Audio file not found: song.mp3","type":"NotFoundError"}' >&2; exit 1`), zap.NewNop())

	_, err := engine.Analyze(context.Background(), Request{AudioPath: "song.mp3", ModelPath: "model.pth"})
	if err == nil {
		t.Fatal("expected error from failing adapter")
	}
	if !strings.Contains(err.Error(), "NotFoundError") {
		t.Errorf("error %q does not carry the adapter's classification", err)
	}
}

func TestScriptRejectsGarbageOutput(t *testing.T) {
	engine := NewScript(fakeAdapter(t, "echo not-json"), zap.NewNop())

	if _, err := engine.Analyze(context.Background(), Request{AudioPath: "song.mp3"}); err == nil {
		t.Fatal("expected error for non-JSON adapter output")
	}
}

func TestScriptReportsMissingBinary(t *testing.T) {
	engine := NewScript(filepath.Join(t.TempDir(), "no-such-binary"), zap.NewNop())

	if _, err := engine.Analyze(context.Background(), Request{AudioPath: "song.mp3"}); err == nil {
		t.Fatal("expected error for missing adapter binary")
	}
}
