// internal/platform/platform_test.go
package platform

import "testing"

func TestRegistryBuiltins(t *testing.T) {
	r := NewRegistry()

	for _, id := range []string{"twitter", "linkedin", "discord", "telegram"} {
		cfg := r.Get(id)
		if cfg == nil {
			t.Fatalf("builtin platform %q not registered", id)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("builtin platform %q invalid: %v", id, err)
		}
	}
}

func TestRegistryDetect(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name     string
		hostname string
		expected string
	}{
		{"twitter", "twitter.com", "twitter"},
		{"x domain", "x.com", "twitter"},
		{"subdomain", "www.linkedin.com", "linkedin"},
		{"discord", "discord.com", "discord"},
		{"telegram web", "web.telegram.org", "telegram"},
		{"unknown", "example.com", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := r.Detect(tt.hostname)
			if tt.expected == "" {
				if cfg != nil {
					t.Errorf("Detect(%q) = %s, expected no match", tt.hostname, cfg.ID)
				}
				return
			}
			if cfg == nil || cfg.ID != tt.expected {
				t.Errorf("Detect(%q) = %v, expected %s", tt.hostname, cfg, tt.expected)
			}
		})
	}
}

func TestRegisterRejectsInvalid(t *testing.T) {
	r := NewRegistry()

	tests := []struct {
		name string
		cfg  *Config
	}{
		{"missing id", &Config{Domains: []string{"a.com"}, CharacterLimit: 100, Selectors: Selectors{Post: []string{"article"}}}},
		{"missing domains", &Config{ID: "x", CharacterLimit: 100, Selectors: Selectors{Post: []string{"article"}}}},
		{"missing post selector", &Config{ID: "x", Domains: []string{"a.com"}, CharacterLimit: 100}},
		{"zero char limit", &Config{ID: "x", Domains: []string{"a.com"}, Selectors: Selectors{Post: []string{"article"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := r.Register(tt.cfg); err == nil {
				t.Error("expected registration to fail")
			}
		})
	}
}
