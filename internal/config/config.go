// Package config is the ambient configuration layer a host (the CLI, or an
// embedding program) uses to assemble the kernel's handlers: LLM provider
// endpoint/model, sandbox limits, and logging mode. The core packages
// (internal/effect, internal/handlers) take these values as constructor
// arguments and never read configuration themselves.
package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Config holds every ambient setting a host assembles the kernel from.
type Config struct {
	LLMEndpoint           string `yaml:"llm_endpoint"`
	LLMModel              string `yaml:"llm_model"`
	SandboxOutputBudget   int    `yaml:"sandbox_output_budget"`
	SandboxTimeoutSeconds int    `yaml:"sandbox_timeout_seconds"`
	LogDevelopment        bool   `yaml:"log_development"`
}

// Default returns the kernel's out-of-the-box configuration: no LLM
// endpoint configured (Generate effects fail closed until a host wires a
// Provider), the handler package's own sandbox defaults, and production
// (JSON) logging.
func Default() Config {
	return Config{
		SandboxOutputBudget:   2000,
		SandboxTimeoutSeconds: 5,
		LogDevelopment:        false,
	}
}

// Load reads a YAML config file at path and overlays its fields onto
// Default(). A missing or empty field in the file keeps the default.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// Environment variable names FromEnv reads. Unset variables leave the
// corresponding Config field untouched.
const (
	EnvLLMEndpoint    = "SPAK_LLM_ENDPOINT"
	EnvLLMModel       = "SPAK_LLM_MODEL"
	EnvLogDevelopment = "SPAK_LOG_DEVELOPMENT"
)

// FromEnv overlays process environment variables onto cfg, returning the
// result. It does not mutate cfg.
func FromEnv(cfg Config) Config {
	if v := os.Getenv(EnvLLMEndpoint); v != "" {
		cfg.LLMEndpoint = v
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv(EnvLogDevelopment); v == "true" || v == "1" {
		cfg.LogDevelopment = true
	}
	return cfg
}
