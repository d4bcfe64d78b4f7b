// internal/extract/entities.go
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/language"

	"github.com/replyforge/postline/internal/dom"
)

var (
	mentionPattern = regexp.MustCompile(`@(\w+)`)
	hashtagPattern = regexp.MustCompile(`#(\w+)`)
	linkPattern    = regexp.MustCompile(`https?://[^\s]+`)
)

var positiveKeywords = []string{
	"great", "awesome", "amazing", "love", "excellent", "fantastic",
	"bullish", "moon", "lfg", "gm", "wagmi", "pump", "rally",
}

var negativeKeywords = []string{
	"bad", "terrible", "hate", "awful", "bearish", "dump", "crash",
	"scam", "rekt", "rug", "liquidated",
}

// Mentions returns the handles referenced in text, in first-seen order,
// without the leading @ and deduplicated case-insensitively.
func Mentions(text string) []string {
	return captureOrdered(mentionPattern, text, true)
}

// Hashtags returns the tags referenced in text, in first-seen order.
func Hashtags(text string) []string {
	return captureOrdered(hashtagPattern, text, false)
}

// Links returns the URLs embedded in text, in first-seen order.
func Links(text string) []string {
	seen := map[string]bool{}
	var links []string
	for _, match := range linkPattern.FindAllString(text, -1) {
		match = strings.TrimRight(match, ".,;:!?)")
		if !seen[match] {
			seen[match] = true
			links = append(links, match)
		}
	}
	return links
}

func captureOrdered(pattern *regexp.Regexp, text string, lower bool) []string {
	seen := map[string]bool{}
	var values []string
	for _, match := range pattern.FindAllStringSubmatch(text, -1) {
		value := match[1]
		if lower {
			value = strings.ToLower(value)
		}
		key := strings.ToLower(value)
		if !seen[key] {
			seen[key] = true
			values = append(values, value)
		}
	}
	return values
}

// AnalyzeSentiment labels text by keyword polarity counts. Ties always
// resolve to neutral.
func AnalyzeSentiment(text string) Sentiment {
	lower := strings.ToLower(text)

	positive := 0
	for _, keyword := range positiveKeywords {
		if containsWord(lower, keyword) {
			positive++
		}
	}
	negative := 0
	for _, keyword := range negativeKeywords {
		if containsWord(lower, keyword) {
			negative++
		}
	}

	switch {
	case positive > negative:
		return SentimentPositive
	case negative > positive:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

func containsWord(text, word string) bool {
	idx := 0
	for {
		i := strings.Index(text[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isWordRune(rune(text[start-1]))
		afterOK := end == len(text) || !isWordRune(rune(text[end]))
		if beforeOK && afterOK {
			return true
		}
		idx = end
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// DetectLanguage guesses a 2-letter language code for a post. An explicit
// lang attribute wins; otherwise the text's script ranges are checked.
// Defaults to "en".
func DetectLanguage(post dom.Node, text string) string {
	if post != nil {
		if code := langAttrCode(post); code != "" {
			return code
		}
		if node := post.FindFirst("[lang]"); node != nil {
			if code := langAttrCode(node); code != "" {
				return code
			}
		}
	}
	return languageFromScript(text)
}

func langAttrCode(node dom.Node) string {
	raw, ok := node.Attr("lang")
	if !ok || raw == "" {
		return ""
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return ""
	}
	base, _ := tag.Base()
	return base.String()
}

func languageFromScript(text string) string {
	var hasHan, hasHangul, hasArabic, hasCyrillic bool
	for _, r := range text {
		switch {
		// Any kana marks Japanese even though the text also carries Han.
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			return "ja"
		case unicode.Is(unicode.Hangul, r):
			hasHangul = true
		case unicode.Is(unicode.Han, r):
			hasHan = true
		case unicode.Is(unicode.Arabic, r):
			hasArabic = true
		case unicode.Is(unicode.Cyrillic, r):
			hasCyrillic = true
		}
	}
	switch {
	case hasHangul:
		return "ko"
	case hasHan:
		return "zh"
	case hasArabic:
		return "ar"
	case hasCyrillic:
		return "ru"
	}
	return "en"
}
