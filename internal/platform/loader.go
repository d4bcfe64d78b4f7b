// internal/platform/loader.go
package platform

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromFile loads an additional platform adapter from a YAML file.
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("adapter filename cannot be empty")
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("adapter file not found: %s", filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read adapter file: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes loads a platform adapter from YAML bytes. Environment
// variables in the form ${VAR} are substituted before parsing.
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("adapter data cannot be empty")
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse adapter YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid adapter: %w", err)
	}
	return &cfg, nil
}

// LoadFromReader loads a platform adapter from a reader.
func LoadFromReader(reader io.Reader) (*Config, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read adapter: %w", err)
	}
	return LoadFromBytes(data)
}

func applyDefaults(cfg *Config) {
	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}
	if cfg.CharacterLimit == 0 {
		cfg.CharacterLimit = 280
	}
	if cfg.Features.Tone == "" {
		cfg.Features.Tone = ToneCasual
	}
	if cfg.Features.EmojiUsage == "" {
		cfg.Features.EmojiUsage = EmojiMedium
	}
	if cfg.Features.HashtagStrategy == "" {
		cfg.Features.HashtagStrategy = HashtagNiche
	}
}
