package config

import "os"

// Engine selector values.
const (
	EngineMock   = "mock"
	EngineScript = "script"
)

// Config holds all configuration for the classification service
type Config struct {
	// Server
	Port        string
	Environment string

	// Analysis engine: "mock" (randomized stand-in) or "script"
	// (subprocess invoking the inference adapter binary)
	Engine       string
	InferenceBin string

	// Filesystem
	ModelPath  string
	ScratchDir string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "5242"),
		Environment:  getEnv("GO_ENV", "development"),
		Engine:       getEnv("ENGINE", EngineMock),
		InferenceBin: getEnv("INFERENCE_BIN", "./inference"),
		ModelPath:    getEnv("MODEL_PATH", "models/classifier.pth"),
		ScratchDir:   getEnv("SCRATCH_DIR", "temp"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
