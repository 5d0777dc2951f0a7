// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/config.json"
	// defaultRequestTimeout is the default timeout for model HTTP requests.
	defaultRequestTimeout = 600 * time.Second
	// defaultToolTimeout bounds a single tool subprocess exchange.
	defaultToolTimeout = 15 * time.Second
	// defaultModel is used when the config omits a model name.
	defaultModel = "mistral:latest"
	// defaultOllamaURL is the local Ollama endpoint.
	defaultOllamaURL = "http://localhost:11434"
)

// defaultMCPCommand launches the Datadog MCP server the way the stock
// deployment ships it.
var defaultMCPCommand = []string{"node", "mcp-server-datadog/build/index.js"}

// Config represents the top-level application configuration. It is built once
// at startup and passed explicitly into the components that need it.
type Config struct {
	OllamaURL      string   `json:"ollamaUrl,omitempty"`
	Model          string   `json:"model,omitempty"`
	MCPCommand     []string `json:"mcpCommand,omitempty"`
	ToolTimeout    int      `json:"toolTimeout,omitempty"`
	TimeoutSeconds int      `json:"timeout,omitempty"`
	Debug          bool     `json:"debug"`
	LogFile        string   `json:"logFile,omitempty"`
	ConfigPath     string   `json:"-"`
}

// RequestTimeout returns the timeout duration for model HTTP requests,
// falling back to the default if not specified.
func (c Config) RequestTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ToolTimeoutDuration returns the timeout applied to a single tool subprocess
// exchange, from spawn to exit.
func (c Config) ToolTimeoutDuration() time.Duration {
	if c.ToolTimeout <= 0 {
		return defaultToolTimeout
	}
	return time.Duration(c.ToolTimeout) * time.Second
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "opsdeck.log"
}

// ModelName returns the configured model, applying the default if not set.
func (c Config) ModelName() string {
	if m := strings.TrimSpace(c.Model); m != "" {
		return m
	}
	return defaultModel
}

// OllamaEndpoint returns the configured Ollama base URL, applying the default if not set.
func (c Config) OllamaEndpoint() string {
	if u := strings.TrimSpace(c.OllamaURL); u != "" {
		return strings.TrimRight(u, "/")
	}
	return defaultOllamaURL
}

// ToolCommand returns the argv used to spawn the external tool process.
func (c Config) ToolCommand() []string {
	if len(c.MCPCommand) > 0 {
		return c.MCPCommand
	}
	return defaultMCPCommand
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err == nil {
		config.ConfigPath = path
		return config, nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("no configuration file found at %q: %w", path, err)
	}

	return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRequestTimeout.Seconds())
	}

	return config, nil
}
