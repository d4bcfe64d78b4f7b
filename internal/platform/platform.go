// internal/platform/platform.go

// Package platform supplies the per-site configuration that parameterizes
// the extraction pipeline: element selectors, field selectors, character
// limits, and feature flags. Configs are immutable after registration and
// read-only to every other component.
package platform

import (
	"fmt"
	"strings"
)

// Tone describes the reply voice a platform expects.
type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneCasual       Tone = "casual"
)

// EmojiUsage expresses how heavily a platform's audience uses emoji.
type EmojiUsage string

const (
	EmojiHigh   EmojiUsage = "high"
	EmojiMedium EmojiUsage = "medium"
	EmojiLow    EmojiUsage = "low"
)

// HashtagStrategy expresses which hashtags suit a platform.
type HashtagStrategy string

const (
	HashtagTrending HashtagStrategy = "trending"
	HashtagNiche    HashtagStrategy = "niche"
	HashtagBranded  HashtagStrategy = "branded"
	HashtagMinimal  HashtagStrategy = "minimal"
)

// EngagementSelectors holds the selector cascades for engagement controls.
type EngagementSelectors struct {
	Likes    []string `yaml:"likes" json:"likes"`
	Shares   []string `yaml:"shares" json:"shares"`
	Comments []string `yaml:"comments" json:"comments"`
}

// Selectors holds the selector cascades for every extracted field. Each list
// is ordered by preference; extractors try entries front to back.
type Selectors struct {
	Post            []string            `yaml:"post" json:"post"`
	PostText        []string            `yaml:"post_text" json:"post_text"`
	ReplyButton     []string            `yaml:"reply_button" json:"reply_button"`
	ReplyBox        []string            `yaml:"reply_box" json:"reply_box"`
	Author          []string            `yaml:"author" json:"author"`
	Username        []string            `yaml:"username" json:"username"`
	Timestamp       []string            `yaml:"timestamp" json:"timestamp"`
	ContentRoot     string              `yaml:"content_root,omitempty" json:"content_root,omitempty"`
	Engagement      EngagementSelectors `yaml:"engagement" json:"engagement"`
	MediaCDNPattern string              `yaml:"media_cdn_pattern,omitempty" json:"media_cdn_pattern,omitempty"`
}

// Features holds platform capability flags and style hints.
type Features struct {
	SupportsThreads  bool            `yaml:"supports_threads" json:"supports_threads"`
	SupportsHashtags bool            `yaml:"supports_hashtags" json:"supports_hashtags"`
	SupportsMentions bool            `yaml:"supports_mentions" json:"supports_mentions"`
	SupportsEmojis   bool            `yaml:"supports_emojis" json:"supports_emojis"`
	CryptoFriendly   bool            `yaml:"crypto_friendly" json:"crypto_friendly"`
	Tone             Tone            `yaml:"tone" json:"tone"`
	EmojiUsage       EmojiUsage      `yaml:"emoji_usage" json:"emoji_usage"`
	HashtagStrategy  HashtagStrategy `yaml:"hashtag_strategy" json:"hashtag_strategy"`
}

// Config is one platform adapter.
type Config struct {
	ID             string    `yaml:"id" json:"id"`
	Name           string    `yaml:"name" json:"name"`
	Domains        []string  `yaml:"domains" json:"domains"`
	CharacterLimit int       `yaml:"character_limit" json:"character_limit"`
	Selectors      Selectors `yaml:"selectors" json:"selectors"`
	Features       Features  `yaml:"features" json:"features"`
}

// Validate checks that the config can drive the pipeline.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("platform id is required")
	}
	if len(c.Domains) == 0 {
		return fmt.Errorf("platform %s: at least one domain is required", c.ID)
	}
	if len(c.Selectors.Post) == 0 {
		return fmt.Errorf("platform %s: at least one post selector is required", c.ID)
	}
	if c.CharacterLimit <= 0 {
		return fmt.Errorf("platform %s: character limit must be positive", c.ID)
	}
	return nil
}

// Registry holds the known platform adapters in registration order.
type Registry struct {
	configs []*Config
}

// NewRegistry returns a registry preloaded with the built-in adapters.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, cfg := range builtinConfigs() {
		r.configs = append(r.configs, cfg)
	}
	return r
}

// Register adds an adapter. Later registrations are consulted after the
// built-ins during detection.
func (r *Registry) Register(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	r.configs = append(r.configs, cfg)
	return nil
}

// Detect matches a hostname against each known config's domain list. The
// first match wins; nil means the site is unsupported and all pipeline
// activity should stay dormant.
func (r *Registry) Detect(hostname string) *Config {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	if hostname == "" {
		return nil
	}
	for _, cfg := range r.configs {
		for _, domain := range cfg.Domains {
			if hostname == domain || strings.HasSuffix(hostname, "."+domain) {
				return cfg
			}
		}
	}
	return nil
}

// Get returns the adapter with the given id, or nil.
func (r *Registry) Get(id string) *Config {
	for _, cfg := range r.configs {
		if cfg.ID == id {
			return cfg
		}
	}
	return nil
}

// IDs returns the registered adapter ids in order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.configs))
	for _, cfg := range r.configs {
		ids = append(ids, cfg.ID)
	}
	return ids
}
