/*
Inference adapter CLI.

Fulfills one classification request per invocation and reports through the
process boundary: AnalysisResponse JSON on stdout with exit code 0, or
ErrorResponse JSON on stderr with exit code 1.

Usage:

	inference -audio-file song.mp3 -model-path models/classifier.pth
	inference -features-file f.json -spectrogram-file s.npy -model-path models/classifier.pth
*/
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/chordal/inference/internal/classify"
	"github.com/chordal/inference/internal/inference"
	"go.uber.org/zap"
)

func main() {
	audioFile := flag.String("audio-file", "", "Path to audio file")
	featuresFile := flag.String("features-file", "", "Path to features JSON file")
	spectrogramFile := flag.String("spectrogram-file", "", "Path to spectrogram NPY file")
	modelPath := flag.String("model-path", "", "Path to model file (required)")
	outputFormat := flag.String("output-format", "json", "Output format (json)")
	strictModel := flag.Bool("strict-model", false, "Fail when the model file is missing instead of provisioning a placeholder")
	verbose := flag.Bool("v", false, "Enable diagnostic logging on stderr")
	flag.Parse()

	// Stderr carries only the error payload unless diagnostics are asked for.
	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
			os.Exit(1)
		}
	}
	defer logger.Sync()

	adapter := inference.New(classify.NewMock(logger), logger)

	resp, err := adapter.Run(context.Background(), inference.Options{
		AudioFile:       *audioFile,
		FeaturesFile:    *featuresFile,
		SpectrogramFile: *spectrogramFile,
		ModelPath:       *modelPath,
		OutputFormat:    *outputFormat,
		StrictModel:     *strictModel,
	})
	if err != nil {
		payload, marshalErr := json.Marshal(inference.AsErrorResponse(err))
		if marshalErr != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, string(payload))
		os.Exit(1)
	}

	out, err := json.Marshal(resp)
	if err != nil {
		payload, _ := json.Marshal(inference.AsErrorResponse(err))
		fmt.Fprintln(os.Stderr, string(payload))
		os.Exit(1)
	}
	fmt.Println(string(out))
}
