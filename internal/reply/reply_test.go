// internal/reply/reply_test.go
package reply

import (
	"strings"
	"testing"

	"github.com/replyforge/postline/internal/extract"
	"github.com/replyforge/postline/internal/intel"
	"github.com/replyforge/postline/internal/platform"
)

func testContext(t *testing.T) PromptContext {
	t.Helper()
	plat := platform.NewRegistry().Get("twitter")
	if plat == nil {
		t.Fatal("twitter platform not registered")
	}
	return PromptContext{
		Post: extract.Post{
			Text:      "bullish on $BTC, who else is accumulating?",
			Username:  "janedoe",
			Sentiment: extract.SentimentPositive,
		},
		Platform: *plat,
		Suggestions: intel.Suggestions{
			Hashtags: []string{"#Bitcoin"},
		},
		Sentiment: 1,
		Detections: []intel.Detection{
			{Project: intel.Project{ID: "bitcoin", Name: "Bitcoin"}, Confidence: 0.9},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(testContext(t))

	if !strings.Contains(prompt.System, "Tone: casual") {
		t.Errorf("system prompt missing tone: %q", prompt.System)
	}
	if !strings.Contains(prompt.System, "280 characters") {
		t.Errorf("system prompt missing character limit: %q", prompt.System)
	}
	if !strings.Contains(prompt.System, "emojis freely") {
		t.Errorf("system prompt missing emoji guidance: %q", prompt.System)
	}
	if prompt.CharLimit != 280 {
		t.Errorf("CharLimit = %d, expected 280", prompt.CharLimit)
	}

	if !strings.Contains(prompt.User, "@janedoe") {
		t.Errorf("user prompt missing author: %q", prompt.User)
	}
	if !strings.Contains(prompt.User, "Bitcoin") {
		t.Errorf("user prompt missing detected project: %q", prompt.User)
	}
	if !strings.Contains(prompt.User, "#Bitcoin") {
		t.Errorf("user prompt missing suggestions: %q", prompt.User)
	}
	if !strings.Contains(prompt.User, "positive") {
		t.Errorf("user prompt missing post sentiment: %q", prompt.User)
	}
}

func TestBuildPromptEmojiAndHashtagRules(t *testing.T) {
	pc := testContext(t)
	pc.Platform.Features.EmojiUsage = platform.EmojiLow
	pc.Platform.Features.HashtagStrategy = platform.HashtagMinimal

	prompt := BuildPrompt(pc)
	if !strings.Contains(prompt.System, "Do not use emojis") {
		t.Errorf("expected emoji prohibition: %q", prompt.System)
	}
	if !strings.Contains(prompt.System, "Do not use hashtags") {
		t.Errorf("expected hashtag prohibition: %q", prompt.System)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{"quoted", `"Nice work on the launch!"`, 280, "Nice work on the launch!"},
		{"preamble", "Reply: sounds great", 280, "sounds great"},
		{"whitespace", "  trimmed  ", 280, "trimmed"},
		{"clamped", "abcdefghij", 5, "abcde"},
		{"no limit", "anything goes", 0, "anything goes"},
		{"multibyte clamp", "héllo wörld", 7, "héllo w"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input, tt.limit); got != tt.expected {
				t.Errorf("Sanitize(%q, %d) = %q, expected %q", tt.input, tt.limit, got, tt.expected)
			}
		})
	}
}
