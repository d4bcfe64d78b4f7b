// internal/reply/reply.go

// Package reply turns extracted posts into platform-appropriate reply
// drafts. The prompt builder encodes platform voice rules; the actual
// text generation is delegated to a Generator implementation.
package reply

import (
	"context"
	"fmt"
	"strings"

	"github.com/replyforge/postline/internal/extract"
	"github.com/replyforge/postline/internal/intel"
	"github.com/replyforge/postline/internal/platform"
)

// Generator produces a reply draft for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}

// Prompt carries the system and user halves of a generation request plus
// the hard limit the final text must respect.
type Prompt struct {
	System    string
	User      string
	CharLimit int
}

// PromptContext is everything the builder needs about the post, the
// platform it came from, and any crypto intelligence derived from it.
type PromptContext struct {
	Post        extract.Post
	Platform    platform.Config
	Suggestions intel.Suggestions
	Sentiment   float64
	Detections  []intel.Detection
}

// BuildPrompt renders a PromptContext into a generation request that
// follows the platform's tone, emoji, and hashtag rules.
func BuildPrompt(pc PromptContext) Prompt {
	var sys strings.Builder
	sys.WriteString("You write short social media replies. ")
	fmt.Fprintf(&sys, "Platform: %s. Tone: %s. ", pc.Platform.Name, pc.Platform.Features.Tone)

	switch pc.Platform.Features.EmojiUsage {
	case platform.EmojiHigh:
		sys.WriteString("Use emojis freely. ")
	case platform.EmojiMedium:
		sys.WriteString("Use at most one emoji. ")
	default:
		sys.WriteString("Do not use emojis. ")
	}

	switch pc.Platform.Features.HashtagStrategy {
	case platform.HashtagTrending:
		sys.WriteString("Include one relevant trending hashtag. ")
	case platform.HashtagNiche:
		sys.WriteString("A niche hashtag is welcome but optional. ")
	default:
		sys.WriteString("Do not use hashtags. ")
	}

	fmt.Fprintf(&sys, "Hard limit: %d characters. ", pc.Platform.CharacterLimit)
	sys.WriteString("Reply with the text only, no quotes, no preamble.")

	var usr strings.Builder
	fmt.Fprintf(&usr, "Post by @%s: %q\n", pc.Post.Username, pc.Post.Text)
	if pc.Post.Sentiment != "" {
		fmt.Fprintf(&usr, "Post sentiment: %s\n", pc.Post.Sentiment)
	}
	if len(pc.Detections) > 0 {
		names := make([]string, 0, len(pc.Detections))
		for _, d := range pc.Detections {
			names = append(names, d.Project.Name)
		}
		fmt.Fprintf(&usr, "Projects discussed: %s\n", strings.Join(names, ", "))
		fmt.Fprintf(&usr, "Market sentiment score: %.2f\n", pc.Sentiment)
	}
	if s := pc.Suggestions; len(s.Mentions)+len(s.Hashtags)+len(s.Tickers) > 0 {
		usr.WriteString("You may optionally weave in: ")
		usr.WriteString(strings.Join(append(append(append([]string{}, s.Mentions...), s.Tickers...), s.Hashtags...), " "))
		usr.WriteString("\n")
	}
	usr.WriteString("Write one reply.")

	return Prompt{
		System:    sys.String(),
		User:      usr.String(),
		CharLimit: pc.Platform.CharacterLimit,
	}
}

// Sanitize strips quoting and model preamble artifacts from a draft and
// clamps it to limit characters on a rune boundary.
func Sanitize(draft string, limit int) string {
	s := strings.TrimSpace(draft)
	s = strings.Trim(s, `"'`)
	for _, prefix := range []string{"Reply:", "reply:", "Response:"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimSpace(s[len(prefix):])
		}
	}
	if limit > 0 {
		runes := []rune(s)
		if len(runes) > limit {
			s = strings.TrimSpace(string(runes[:limit]))
		}
	}
	return s
}
