// internal/extract/text.go
package extract

import (
	"strings"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/platform"
)

// uiControlLabels are strings that identify control chrome rather than post
// content. Candidates matching one of these are never accepted as body text.
var uiControlLabels = map[string]bool{
	"reply":     true,
	"replies":   true,
	"like":      true,
	"likes":     true,
	"retweet":   true,
	"repost":    true,
	"share":     true,
	"comment":   true,
	"follow":    true,
	"following": true,
	"more":      true,
	"show more": true,
	"translate": true,
}

// TextStrategy is one rung of the body-text cascade.
type TextStrategy struct {
	Name       string
	Confidence float64
	Run        func(post dom.Node, cfg *platform.Config) string
}

// TextExtractor finds the body text of a post element by trying strategies
// in descending confidence order. The first non-empty result wins; strategies
// are never combined.
type TextExtractor struct {
	Strategies []TextStrategy
}

// NewTextExtractor returns the default four-rung cascade.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{
		Strategies: []TextStrategy{
			{Name: "primary_selector", Confidence: 0.95, Run: textFromPrimarySelector},
			{Name: "lang_attribute", Confidence: 0.85, Run: textFromLangElements},
			{Name: "inline_containers", Confidence: 0.70, Run: textFromInlineContainers},
			{Name: "longest_line", Confidence: 0.50, Run: textFromLongestLine},
		},
	}
}

// Extract returns the post body text with the confidence of the strategy
// that produced it, or an empty result if no strategy succeeds.
func (e *TextExtractor) Extract(post dom.Node, cfg *platform.Config) Result {
	for _, strategy := range e.Strategies {
		if value := strategy.Run(post, cfg); value != "" {
			return Result{Value: value, Confidence: strategy.Confidence}
		}
	}
	return Result{}
}

func textFromPrimarySelector(post dom.Node, cfg *platform.Config) string {
	node := dom.FindFirstOf(post, cfg.Selectors.PostText)
	if node == nil {
		return ""
	}
	text := node.Text()
	if len(text) < 3 {
		return ""
	}
	return text
}

func textFromLangElements(post dom.Node, _ *platform.Config) string {
	longest := ""
	for _, node := range post.FindAll("[lang]") {
		if text := node.Text(); len(text) > len(longest) {
			longest = text
		}
	}
	if len(longest) <= 10 {
		return ""
	}
	return longest
}

func textFromInlineContainers(post dom.Node, _ *platform.Config) string {
	longest := ""
	for _, node := range post.FindAll("span, p") {
		text := node.Text()
		if len(text) < 20 || len(text) > 2000 {
			continue
		}
		if isUIControlLabel(text) {
			continue
		}
		// A candidate containing controls is whole-card text, not the body.
		if node.FindFirst("button") != nil || node.FindFirst(`[role="button"]`) != nil {
			continue
		}
		if len(text) > len(longest) {
			longest = text
		}
	}
	return longest
}

func textFromLongestLine(post dom.Node, _ *platform.Config) string {
	longest := ""
	for _, line := range strings.Split(post.Text(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isUIControlLabel(line) {
			continue
		}
		if len(line) > len(longest) {
			longest = line
		}
	}
	return longest
}

func isUIControlLabel(text string) bool {
	return uiControlLabels[strings.ToLower(strings.TrimSpace(text))]
}
