// internal/extract/metrics.go
package extract

import (
	"strings"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/platform"
	"github.com/replyforge/postline/internal/utils"
)

// metricConfidenceStep is the confidence gained per classified metric,
// capped at 1.0.
const metricConfidenceStep = 0.25

var metricKeywords = map[string][]string{
	"replies": {"reply", "replies", "comment", "comments", "💬"},
	"shares":  {"retweet", "retweets", "repost", "reposts", "share", "shares", "forward", "🔁"},
	"likes":   {"like", "likes", "favorite", "reaction", "❤", "👍"},
	"views":   {"view", "views", "impression", "impressions"},
}

// MetricsExtractor reads engagement counters from control-like descendants
// of a post element.
type MetricsExtractor struct{}

// NewMetricsExtractor returns the default metrics extractor.
func NewMetricsExtractor() *MetricsExtractor { return &MetricsExtractor{} }

// Extract scans button-like elements, reading aria-label and inner text
// together, and classifies the first numeric token by keyword or emoji
// glyph. Confidence grows with each classified metric.
func (e *MetricsExtractor) Extract(post dom.Node, cfg *platform.Config) (Metrics, float64) {
	metrics := Metrics{}
	confidence := 0.0
	classified := map[string]bool{}

	controls := post.FindAll(`[role="button"], button`)
	for _, selector := range cfg.Selectors.Engagement.Likes {
		controls = append(controls, post.FindAll(selector)...)
	}
	for _, selector := range cfg.Selectors.Engagement.Shares {
		controls = append(controls, post.FindAll(selector)...)
	}
	for _, selector := range cfg.Selectors.Engagement.Comments {
		controls = append(controls, post.FindAll(selector)...)
	}

	for _, control := range controls {
		label, _ := control.Attr("aria-label")
		combined := strings.ToLower(label + " " + control.Text())

		count, ok := utils.FirstCountToken(combined)
		if !ok {
			continue
		}

		kind := classifyMetric(combined)
		if kind == "" || classified[kind] {
			continue
		}
		classified[kind] = true
		confidence += metricConfidenceStep

		switch kind {
		case "replies":
			metrics.Replies = count
		case "shares":
			metrics.Shares = count
		case "likes":
			metrics.Likes = count
		case "views":
			metrics.Views = count
		}
	}

	if confidence > 1.0 {
		confidence = 1.0
	}
	return metrics, confidence
}

func classifyMetric(label string) string {
	for _, kind := range []string{"replies", "shares", "likes", "views"} {
		for _, keyword := range metricKeywords[kind] {
			if strings.Contains(label, keyword) {
				return kind
			}
		}
	}
	return ""
}
