// internal/extract/media.go
package extract

import (
	"strings"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/platform"
)

// MediaExtractor collects image and video attachments. Media absence is not
// a rejection signal, so no confidence is scored.
type MediaExtractor struct{}

// NewMediaExtractor returns the default media extractor.
func NewMediaExtractor() *MediaExtractor { return &MediaExtractor{} }

// Extract returns attachments in document order. Images are filtered to the
// platform's media CDN when a pattern is configured, which drops avatars and
// UI sprites served from other hosts.
func (e *MediaExtractor) Extract(post dom.Node, cfg *platform.Config) []Media {
	var media []Media

	for _, img := range post.FindAll("img[src]") {
		src, _ := img.Attr("src")
		if src == "" {
			continue
		}
		if cfg.Selectors.MediaCDNPattern != "" && !strings.Contains(src, cfg.Selectors.MediaCDNPattern) {
			continue
		}
		alt, _ := img.Attr("alt")
		media = append(media, Media{Kind: MediaImage, URL: src, AltText: alt})
	}

	for _, video := range post.FindAll("video") {
		src, ok := video.Attr("src")
		if !ok || src == "" {
			if source := video.FindFirst("source"); source != nil {
				src, _ = source.Attr("src")
			}
		}
		if src != "" {
			media = append(media, Media{Kind: MediaVideo, URL: src})
		}
	}

	return media
}
