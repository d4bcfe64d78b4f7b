// internal/utils/parse.go
package utils

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeTimePattern = regexp.MustCompile(`(\d+)\s*([mhd])`)

// ParseCount parses an abbreviated engagement count such as "12.3K" or
// "1M" into an integer. Thousands separators are stripped; the K/M/B
// suffixes multiply the float value, which is then floored. Anything
// unparseable yields 0.
func ParseCount(text string) int {
	cleaned := strings.ToLower(strings.TrimSpace(text))
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0
	}

	multiplier := 1.0
	switch {
	case strings.Contains(cleaned, "k"):
		multiplier = 1_000
		cleaned = strings.TrimSuffix(strings.ReplaceAll(cleaned, "k", ""), ".")
	case strings.Contains(cleaned, "m"):
		multiplier = 1_000_000
		cleaned = strings.TrimSuffix(strings.ReplaceAll(cleaned, "m", ""), ".")
	case strings.Contains(cleaned, "b"):
		multiplier = 1_000_000_000
		cleaned = strings.TrimSuffix(strings.ReplaceAll(cleaned, "b", ""), ".")
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	result := int(value * multiplier)
	if result < 0 {
		return 0
	}
	return result
}

// FirstCountToken extracts and parses the first numeric token (with optional
// K/M/B suffix) found in text, for labels like "1,024 Likes".
func FirstCountToken(text string) (int, bool) {
	token := countTokenPattern.FindString(text)
	if token == "" {
		return 0, false
	}
	return ParseCount(token), true
}

var countTokenPattern = regexp.MustCompile(`[\d,]+(?:\.\d+)?[KkMmBb]?\b`)

// IsRelativeTimeLabel reports whether text looks like a relative-time label
// the pipeline can resolve ("5m", "2h", "3d", "now").
func IsRelativeTimeLabel(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	return strings.Contains(lower, "now") || relativeTimePattern.MatchString(lower)
}

// ParseRelativeTime resolves a human relative-time label ("5m", "2h", "3d",
// "now") against the supplied wall-clock. Unrecognized labels resolve to
// now, the weakest possible evidence.
func ParseRelativeTime(text string, now time.Time) time.Time {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" || strings.Contains(lower, "now") {
		return now
	}

	match := relativeTimePattern.FindStringSubmatch(lower)
	if match == nil {
		return now
	}
	amount, err := strconv.Atoi(match[1])
	if err != nil {
		return now
	}

	switch match[2] {
	case "m":
		return now.Add(-time.Duration(amount) * time.Minute)
	case "h":
		return now.Add(-time.Duration(amount) * time.Hour)
	case "d":
		return now.Add(-time.Duration(amount) * 24 * time.Hour)
	}
	return now
}
