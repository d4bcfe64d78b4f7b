// internal/extract/types.go

// Package extract implements the field-extraction strategy cascades and the
// post assembler. Every extractor is a pure function over a dom.Node and a
// platform config; none mutates the document or keeps state across calls.
package extract

import "time"

// Result is one field candidate with its confidence in [0,1].
type Result struct {
	Value      string
	Confidence float64
}

// MediaKind identifies a media attachment type.
type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

// Media is one attachment of a post.
type Media struct {
	Kind    MediaKind `json:"kind"`
	URL     string    `json:"url"`
	AltText string    `json:"altText,omitempty"`
}

// Sentiment labels the keyword-polarity of a post's text.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Metrics holds the engagement counters of a post.
type Metrics struct {
	Replies int `json:"replyCount"`
	Shares  int `json:"shareCount"`
	Likes   int `json:"likeCount"`
	Views   int `json:"viewCount"`
}

// Post is one social-media post as understood by the pipeline. ID is derived
// from content, not from the platform's own post id, which is not reliably
// extractable from markup.
type Post struct {
	ID                 string    `json:"id"`
	Text               string    `json:"text"`
	Author             string    `json:"author"`
	Username           string    `json:"username"`
	TimestampISO       string    `json:"timestampIso"`
	Metrics            Metrics   `json:"metrics"`
	HasReplyAffordance bool      `json:"hasReplyAffordance"`
	Permalink          string    `json:"permalink,omitempty"`
	IsThread           bool      `json:"isThread"`
	IsRepost           bool      `json:"isRepost"`
	Media              []Media   `json:"media,omitempty"`
	Mentions           []string  `json:"mentions,omitempty"`
	Hashtags           []string  `json:"hashtags,omitempty"`
	Links              []string  `json:"links,omitempty"`
	Sentiment          Sentiment `json:"sentimentLabel"`
	LanguageCode       string    `json:"languageCode"`
	Quality            float64   `json:"quality"`
	ExtractedAtISO     string    `json:"extractedAtIso"`
	Platform           string    `json:"platform"`
}

// AuthorInfo couples a display name with a handle.
type AuthorInfo struct {
	Author     string
	Username   string
	Confidence float64
}

// Clock abstracts wall-clock reads so relative-time resolution is testable.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
