// internal/extract/author.go
package extract

import (
	"regexp"
	"strings"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/platform"
)

var (
	handlePattern         = regexp.MustCompile(`@(\w+)`)
	profileSegmentPattern = regexp.MustCompile(`^\w+$`)
)

// navigationHandles are path segments that look like profile links but are
// site navigation. A handle matching one of these is rejected.
var navigationHandles = map[string]bool{
	"home":          true,
	"explore":       true,
	"notifications": true,
	"messages":      true,
	"search":        true,
	"settings":      true,
	"compose":       true,
	"login":         true,
	"signup":        true,
	"i":             true,
	"intent":        true,
	"hashtag":       true,
}

// AuthorExtractor resolves the display name and handle of a post's author.
// A post with no attributable author is not useful, so an empty username is
// treated as total failure by the assembler.
type AuthorExtractor struct{}

// NewAuthorExtractor returns the default author cascade.
func NewAuthorExtractor() *AuthorExtractor { return &AuthorExtractor{} }

// Extract runs the handle cascade: structured selector match, profile-link
// href pattern, then a raw @word scan. The display name is resolved
// independently from the author selectors and falls back to the handle.
func (e *AuthorExtractor) Extract(post dom.Node, cfg *platform.Config) AuthorInfo {
	info := AuthorInfo{}

	if node := dom.FindFirstOf(post, cfg.Selectors.Author); node != nil {
		info.Author = firstTextLine(node.Text())
	}

	if handle := handleFromStructured(post, cfg); handle != "" {
		info.Username = handle
		info.Confidence = 0.9
	} else if handle := handleFromProfileLink(post); handle != "" {
		info.Username = handle
		info.Confidence = 0.8
	} else if handle := handleFromRawText(post); handle != "" {
		info.Username = handle
		info.Confidence = 0.6
	}

	if info.Author == "" {
		info.Author = info.Username
	}
	return info
}

func handleFromStructured(post dom.Node, cfg *platform.Config) string {
	node := dom.FindFirstOf(post, cfg.Selectors.Username)
	if node == nil {
		return ""
	}
	return normalizeHandle(handlePattern.FindString(node.Text()))
}

func handleFromProfileLink(post dom.Node) string {
	for _, link := range post.FindAll("a[href]") {
		href, _ := link.Attr("href")
		handle := handleFromHref(href)
		if handle != "" && !navigationHandles[handle] {
			return handle
		}
	}
	return ""
}

// handleFromHref extracts a username from a relative profile path such as
// "/janedoe" or "/janedoe/status/123".
func handleFromHref(href string) string {
	if !strings.HasPrefix(href, "/") {
		return ""
	}
	segments := strings.Split(strings.TrimPrefix(href, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return ""
	}
	first := segments[0]
	if !profileSegmentPattern.MatchString(first) {
		return ""
	}
	return strings.ToLower(first)
}

func handleFromRawText(post dom.Node) string {
	return normalizeHandle(handlePattern.FindString(post.Text()))
}

// normalizeHandle lowercases and strips the leading @.
func normalizeHandle(raw string) string {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "@")
	return strings.ToLower(raw)
}

// firstTextLine trims a block of stacked text down to its first line, which
// for author blocks is the display name.
func firstTextLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
