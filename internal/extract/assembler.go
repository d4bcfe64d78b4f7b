// internal/extract/assembler.go
package extract

import (
	"strings"
	"time"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/platform"
)

// Weights holds the quality aggregation tuning. The values are carried-over
// heuristics, not a principled formula; treat them as configuration. The
// weights sum to 80, leaving headroom for future signals.
type Weights struct {
	Text      float64 `yaml:"text" json:"text"`
	Author    float64 `yaml:"author" json:"author"`
	Timestamp float64 `yaml:"timestamp" json:"timestamp"`
	Metrics   float64 `yaml:"metrics" json:"metrics"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// DefaultWeights returns the observed tuning: 30/25/15/10 with a validity
// threshold of 50.
func DefaultWeights() Weights {
	return Weights{Text: 30, Author: 25, Timestamp: 15, Metrics: 10, Threshold: 50}
}

// Assembler combines field-extractor outputs for one element into a single
// record, scores it, and applies the validity threshold.
type Assembler struct {
	Text      *TextExtractor
	Author    *AuthorExtractor
	Timestamp *TimestampExtractor
	Metrics   *MetricsExtractor
	Media     *MediaExtractor
	Weights   Weights
	Clock     Clock
}

// NewAssembler builds an assembler with the default extractors and weights.
func NewAssembler() *Assembler {
	return &Assembler{
		Text:      NewTextExtractor(),
		Author:    NewAuthorExtractor(),
		Timestamp: NewTimestampExtractor(),
		Metrics:   NewMetricsExtractor(),
		Media:     NewMediaExtractor(),
		Weights:   DefaultWeights(),
		Clock:     SystemClock{},
	}
}

// Assemble extracts a post record from one element, or returns nil when the
// element is not a usable post. Text and author are mandatory and short-
// circuit the remaining extractors on failure.
func (a *Assembler) Assemble(post dom.Node, cfg *platform.Config) *Post {
	text := a.Text.Extract(post, cfg)
	if len(text.Value) < 3 {
		return nil
	}

	author := a.Author.Extract(post, cfg)
	if author.Username == "" || author.Username == "unknown" {
		return nil
	}

	timestamp := a.Timestamp.Extract(post, cfg)
	metrics, metricsConfidence := a.Metrics.Extract(post, cfg)

	quality := text.Confidence*a.Weights.Text +
		author.Confidence*a.Weights.Author +
		timestamp.Confidence*a.Weights.Timestamp +
		metricsConfidence*a.Weights.Metrics
	if quality < a.Weights.Threshold {
		return nil
	}

	record := &Post{
		ID:                 ComputeID(text.Value, author.Username, timestamp.Value),
		Text:               text.Value,
		Author:             author.Author,
		Username:           author.Username,
		TimestampISO:       timestamp.Value,
		Metrics:            metrics,
		HasReplyAffordance: hasReplyAffordance(post, cfg),
		Permalink:          permalink(post),
		IsThread:           cfg.Features.SupportsThreads && looksLikeThread(post),
		IsRepost:           looksLikeRepost(post),
		Media:              a.Media.Extract(post, cfg),
		Mentions:           Mentions(text.Value),
		Hashtags:           Hashtags(text.Value),
		Links:              Links(text.Value),
		Sentiment:          AnalyzeSentiment(text.Value),
		LanguageCode:       DetectLanguage(post, text.Value),
		Quality:            quality,
		ExtractedAtISO:     a.Clock.Now().UTC().Format(time.RFC3339),
		Platform:           cfg.ID,
	}
	return record
}

func hasReplyAffordance(post dom.Node, cfg *platform.Config) bool {
	return dom.FindFirstOf(post, cfg.Selectors.ReplyButton) != nil
}

func permalink(post dom.Node) string {
	if link := post.FindFirst(`a[href*="/status/"]`); link != nil {
		href, _ := link.Attr("href")
		return href
	}
	if link := post.FindFirst("time[datetime]"); link != nil {
		if parent := link.Closest("a[href]"); parent != nil {
			href, _ := parent.Attr("href")
			return href
		}
	}
	return ""
}

func looksLikeThread(post dom.Node) bool {
	if post.FindFirst(`[aria-label*="thread" i]`) != nil {
		return true
	}
	text := strings.ToLower(post.Text())
	return strings.Contains(text, "show this thread")
}

func looksLikeRepost(post dom.Node) bool {
	if node := post.FindFirst(`[data-testid="socialContext"]`); node != nil {
		label := strings.ToLower(node.Text())
		return strings.Contains(label, "repost") || strings.Contains(label, "retweet")
	}
	return false
}
