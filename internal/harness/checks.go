package harness

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"github.com/chordal/inference/internal/models"
	"github.com/google/uuid"
)

// dummyWAV returns a minimal well-formed RIFF/WAVE container with a
// zero-length data chunk. The contract only needs a structurally valid
// input, not audible content.
func dummyWAV() []byte {
	return []byte{
		0x52, 0x49, 0x46, 0x46, // "RIFF"
		0x24, 0x00, 0x00, 0x00, // chunk size (36 + data)
		0x57, 0x41, 0x56, 0x45, // "WAVE"
		0x66, 0x6D, 0x74, 0x20, // "fmt "
		0x10, 0x00, 0x00, 0x00, // subchunk1 size
		0x01, 0x00, // PCM
		0x01, 0x00, // mono
		0x44, 0xAC, 0x00, 0x00, // 44100 Hz
		0x88, 0x58, 0x01, 0x00, // byte rate
		0x02, 0x00, // block align
		0x10, 0x00, // 16 bits per sample
		0x64, 0x61, 0x74, 0x61, // "data"
		0x00, 0x00, 0x00, 0x00, // empty data chunk
	}
}

func (r *Runner) checkHealth() error {
	return r.getOK(r.BaseURL + "/api/health")
}

func (r *Runner) checkInfo() error {
	return r.getOK(r.BaseURL + "/api/health/info")
}

func (r *Runner) checkAnalyzeJSON() error {
	payload, err := json.Marshal(map[string]string{
		"audioData": base64.StdEncoding.EncodeToString(dummyWAV()),
		"fileName":  "test_audio.wav",
		"format":    "wav",
	})
	if err != nil {
		return err
	}

	resp, err := r.Client.Post(r.BaseURL+"/api/music/analyze", "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectAnalysis(resp)
}

func (r *Runner) checkUpload() error {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "test_audio.wav")
	if err != nil {
		return err
	}
	if _, err := part.Write(dummyWAV()); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	resp, err := r.Client.Post(r.BaseURL+"/api/music/analyze/upload", writer.FormDataContentType(), &body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectAnalysis(resp)
}

func (r *Runner) checkPreprocessed() error {
	if err := os.MkdirAll(r.ScratchDir, 0o755); err != nil {
		return err
	}

	featuresPath := filepath.Join(r.ScratchDir, "features-"+uuid.New().String()+".json")
	spectrogramPath := filepath.Join(r.ScratchDir, "spectrogram-"+uuid.New().String()+".npy")

	// Cleanup is unconditional, not gated on the outcome.
	defer os.Remove(featuresPath)
	defer os.Remove(spectrogramPath)

	if err := os.WriteFile(featuresPath, []byte(`{"dummy":"features"}`), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(spectrogramPath, []byte("dummy_spectrogram_data"), 0o644); err != nil {
		return err
	}

	params := url.Values{}
	params.Set("featuresPath", featuresPath)
	params.Set("spectrogramPath", spectrogramPath)
	params.Set("fileName", "test_song.wav")

	resp, err := r.Client.Post(r.BaseURL+"/api/music/analyze/preprocessed?"+params.Encode(), "application/json", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return expectAnalysis(resp)
}

// getOK issues a GET and passes iff the status is exactly 200 and the body
// is well-formed JSON.
func (r *Runner) getOK(u string) error {
	resp, err := r.Client.Get(u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("malformed response body: %w", err)
	}
	return nil
}

// expectAnalysis passes iff the status is exactly 200 and the body decodes
// as an AnalysisResponse.
func expectAnalysis(resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d, want %d", resp.StatusCode, http.StatusOK)
	}

	var analysis models.AnalysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return fmt.Errorf("malformed response body: %w", err)
	}
	return nil
}
