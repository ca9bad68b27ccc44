package models

import (
	"fmt"
	"math"
)

// ModelVersion is the version string reported in every response's metadata.
const ModelVersion = "1.0.0"

// Genres is the closed set of genre labels a classifier may emit.
var Genres = []string{"rock", "pop", "jazz", "classical", "electronic", "hip_hop", "country", "blues"}

// Moods is the closed set of mood labels a classifier may emit.
var Moods = []string{"happy", "sad", "energetic", "calm", "aggressive"}

// Keys is the closed set of musical key labels, the 12 pitch classes in sharps notation.
var Keys = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Range is a closed numeric interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Confidence and value ranges every implementation must honor. Clients
// depend on these bounds, so they are part of the contract rather than
// tuning knobs of any particular engine.
var (
	GenreConfidence = Range{Min: 0.60, Max: 0.95}
	MoodConfidence  = Range{Min: 0.60, Max: 0.95}
	BPMConfidence   = Range{Min: 0.70, Max: 0.95}
	KeyConfidence   = Range{Min: 0.50, Max: 0.90}

	BPMValue       = Range{Min: 60, Max: 180}
	ProcessingTime = Range{Min: 1, Max: 3}
	AudioDuration  = Range{Min: 30, Max: 300}
)

// PredictionField is a single classifier output paired with its confidence.
// Categorical fields carry Label; numeric fields carry Value. Exactly one of
// the two is set.
type PredictionField struct {
	Label      string   `json:"label,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Predictions holds the four mandated prediction fields. Field order here
// fixes the JSON insertion order: genre, mood, bpm, key.
type Predictions struct {
	Genre PredictionField `json:"genre"`
	Mood  PredictionField `json:"mood"`
	BPM   PredictionField `json:"bpm"`
	Key   PredictionField `json:"key"`
}

// Metadata describes the run that produced a response. Timing figures are
// reported by the engine, not promised to be wall-clock accurate.
type Metadata struct {
	ModelVersion          string  `json:"model_version"`
	ProcessingTimeSeconds float64 `json:"processing_time_seconds"`
	AudioDurationSeconds  float64 `json:"audio_duration_seconds"`
}

// AnalysisResponse is the success payload. It is only ever emitted on the
// success path; failures emit ErrorResponse instead, never a mix of the two.
type AnalysisResponse struct {
	Predictions Predictions `json:"predictions"`
	Metadata    Metadata    `json:"metadata"`
}

// ErrorResponse is the failure payload for both the adapter process
// boundary and the HTTP surface.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// Validate checks a response against the contract: labels drawn from the
// closed enumerations, confidences inside their mandated ranges, and a bpm
// value in range and rounded to one decimal place.
func (r *AnalysisResponse) Validate() error {
	if err := validateLabel("genre", r.Predictions.Genre, Genres, GenreConfidence); err != nil {
		return err
	}
	if err := validateLabel("mood", r.Predictions.Mood, Moods, MoodConfidence); err != nil {
		return err
	}
	if err := validateLabel("key", r.Predictions.Key, Keys, KeyConfidence); err != nil {
		return err
	}
	bpm := r.Predictions.BPM
	if bpm.Value == nil {
		return fmt.Errorf("bpm: missing value")
	}
	if !BPMValue.Contains(*bpm.Value) {
		return fmt.Errorf("bpm: value %v outside [%v, %v]", *bpm.Value, BPMValue.Min, BPMValue.Max)
	}
	if math.Abs(*bpm.Value*10-math.Round(*bpm.Value*10)) > 1e-9 {
		return fmt.Errorf("bpm: value %v not rounded to 1 decimal place", *bpm.Value)
	}
	if !BPMConfidence.Contains(bpm.Confidence) {
		return fmt.Errorf("bpm: confidence %v outside [%v, %v]", bpm.Confidence, BPMConfidence.Min, BPMConfidence.Max)
	}
	if r.Metadata.ModelVersion == "" {
		return fmt.Errorf("metadata: missing model_version")
	}
	return nil
}

func validateLabel(name string, f PredictionField, allowed []string, conf Range) error {
	if f.Label == "" {
		return fmt.Errorf("%s: missing label", name)
	}
	found := false
	for _, l := range allowed {
		if f.Label == l {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%s: label %q not in contract enumeration", name, f.Label)
	}
	if !conf.Contains(f.Confidence) {
		return fmt.Errorf("%s: confidence %v outside [%v, %v]", name, f.Confidence, conf.Min, conf.Max)
	}
	return nil
}
