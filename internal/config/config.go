// internal/config/config.go

// Package config loads the application configuration from YAML with
// environment variable expansion.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/output"
	"github.com/replyforge/postline/internal/pipeline"
	"github.com/replyforge/postline/internal/reply"
	"github.com/replyforge/postline/internal/server"
)

// AppConfig is the top-level configuration.
type AppConfig struct {
	Name string `yaml:"name" json:"name"`
	// Platform selects a builtin platform by id; PlatformFile loads a
	// custom platform definition instead. Exactly one must be set.
	Platform     string `yaml:"platform,omitempty" json:"platform,omitempty"`
	PlatformFile string `yaml:"platform_file,omitempty" json:"platform_file,omitempty"`

	LogLevel string `yaml:"log_level,omitempty" json:"log_level,omitempty"`

	Live     dom.LiveConfig     `yaml:"live" json:"live"`
	Pipeline pipeline.Config    `yaml:"pipeline" json:"pipeline"`
	Outputs  []output.Config    `yaml:"outputs,omitempty" json:"outputs,omitempty"`
	Server   server.Config      `yaml:"server" json:"server"`
	Reply    reply.ClientConfig `yaml:"reply" json:"reply"`
}

// LoadFromFile reads and parses a YAML configuration file. Environment
// variables referenced as ${VAR} are expanded before parsing.
func LoadFromFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses YAML configuration data.
func LoadFromBytes(data []byte) (*AppConfig, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := &AppConfig{
		Pipeline: pipeline.DefaultConfig(),
		Server:   server.DefaultConfig(),
		Reply:    reply.DefaultClientConfig(),
	}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) applyDefaults() {
	if c.Name == "" {
		c.Name = "postline"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Live.PollInterval <= 0 && c.Live.URL != "" {
		defaults := dom.DefaultLiveConfig(c.Live.URL)
		if c.Live.PollInterval <= 0 {
			c.Live.PollInterval = defaults.PollInterval
		}
		if c.Live.NavTimeout <= 0 {
			c.Live.NavTimeout = defaults.NavTimeout
		}
	}
}

// Validate checks that the configuration is internally consistent.
func (c *AppConfig) Validate() error {
	if c.Platform == "" && c.PlatformFile == "" {
		return fmt.Errorf("either platform or platform_file is required")
	}
	if c.Platform != "" && c.PlatformFile != "" {
		return fmt.Errorf("platform and platform_file are mutually exclusive")
	}
	for i := range c.Outputs {
		if err := c.Outputs[i].Validate(); err != nil {
			return fmt.Errorf("outputs[%d]: %w", i, err)
		}
	}
	return nil
}

// GenerateTemplate returns a starter configuration for the given type.
// Supported types: basic, crypto.
func GenerateTemplate(templateType string) *AppConfig {
	cfg := &AppConfig{
		Name:     "my-extractor",
		Platform: "twitter",
		LogLevel: "info",
		Live:     *dom.DefaultLiveConfig("https://x.com/home"),
		Pipeline: pipeline.DefaultConfig(),
		Outputs: []output.Config{
			{Format: output.FormatJSON, File: "posts.json"},
		},
		Server: server.DefaultConfig(),
		Reply:  reply.DefaultClientConfig(),
	}
	if templateType == "crypto" {
		cfg.Name = "crypto-feed"
		cfg.Outputs = append(cfg.Outputs, output.Config{
			Format: output.FormatSQLite, File: "posts.db", Table: "posts",
		})
		cfg.Reply.APIKey = "${FIREWORKS_API_KEY}"
	}
	return cfg
}
