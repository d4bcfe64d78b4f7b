// internal/extract/timestamp.go
package extract

import (
	"time"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/platform"
	"github.com/replyforge/postline/internal/utils"
)

// TimestampExtractor resolves a post's absolute timestamp. A machine-readable
// datetime attribute is preferred; human relative-time labels are resolved
// against the clock at extraction time.
type TimestampExtractor struct {
	Clock Clock
}

// NewTimestampExtractor returns an extractor on the system clock.
func NewTimestampExtractor() *TimestampExtractor {
	return &TimestampExtractor{Clock: SystemClock{}}
}

// Extract returns an ISO-8601 timestamp. Confidence reflects the evidence:
// 0.95 for an absolute attribute, 0.8 for a relative time element, 0.7 for a
// link-embedded relative label, and 0.1 for the "now" default.
func (e *TimestampExtractor) Extract(post dom.Node, cfg *platform.Config) Result {
	now := e.Clock.Now()

	if node := post.FindFirst("time[datetime]"); node != nil {
		if raw, ok := node.Attr("datetime"); ok {
			if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
				return Result{Value: parsed.UTC().Format(time.RFC3339), Confidence: 0.95}
			}
		}
	}

	for _, selector := range cfg.Selectors.Timestamp {
		node := post.FindFirst(selector)
		if node == nil {
			continue
		}
		if raw, ok := node.Attr("datetime"); ok {
			if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
				return Result{Value: parsed.UTC().Format(time.RFC3339), Confidence: 0.95}
			}
		}
		if label := node.Text(); utils.IsRelativeTimeLabel(label) {
			resolved := utils.ParseRelativeTime(label, now)
			return Result{Value: resolved.UTC().Format(time.RFC3339), Confidence: 0.8}
		}
	}

	// Permalinks sometimes carry the relative label when no time element
	// survives virtualization.
	for _, link := range post.FindAll(`a[href*="/status/"]`) {
		if label := link.Text(); len(label) <= 12 && utils.IsRelativeTimeLabel(label) {
			resolved := utils.ParseRelativeTime(label, now)
			return Result{Value: resolved.UTC().Format(time.RFC3339), Confidence: 0.7}
		}
	}

	return Result{Value: now.UTC().Format(time.RFC3339), Confidence: 0.1}
}
