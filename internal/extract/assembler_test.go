// internal/extract/assembler_test.go
package extract

import (
	"testing"
	"time"
)

func testAssembler(at time.Time) *Assembler {
	a := NewAssembler()
	a.Clock = fixedClock{at}
	a.Timestamp.Clock = fixedClock{at}
	return a
}

func TestAssembleCleanPost(t *testing.T) {
	cfg := twitterConfig(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	post := testAssembler(now).Assemble(parsePost(t, cleanPostHTML), cfg)

	if post == nil {
		t.Fatal("expected a valid post")
	}
	if post.Text != "Just shipped our new API gateway, feedback welcome!" {
		t.Errorf("unexpected text: %q", post.Text)
	}
	if post.Username != "janedoe" {
		t.Errorf("unexpected username: %q", post.Username)
	}
	if post.Author != "Jane Doe" {
		t.Errorf("unexpected author: %q", post.Author)
	}
	if post.TimestampISO != "2024-05-01T10:00:00Z" {
		t.Errorf("unexpected timestamp: %q", post.TimestampISO)
	}
	if post.Metrics.Likes != 3200 || post.Metrics.Replies != 1024 || post.Metrics.Shares != 215 {
		t.Errorf("unexpected metrics: %+v", post.Metrics)
	}
	if post.Quality < 50 {
		t.Errorf("quality = %v, expected at least the validity threshold", post.Quality)
	}
	if !post.HasReplyAffordance {
		t.Error("expected reply affordance")
	}
	if post.Permalink != "/janedoe/status/123" {
		t.Errorf("unexpected permalink: %q", post.Permalink)
	}
	if post.Platform != "twitter" {
		t.Errorf("unexpected platform: %q", post.Platform)
	}
	if post.ExtractedAtISO != now.Format(time.RFC3339) {
		t.Errorf("unexpected extraction time: %q", post.ExtractedAtISO)
	}
	if post.ID == "" {
		t.Error("expected a derived id")
	}
}

func TestAssembleRejections(t *testing.T) {
	cfg := twitterConfig(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assembler := testAssembler(now)

	tests := []struct {
		name string
		html string
	}{
		{
			"handle-only card",
			`<article><div data-testid="User-Name">@janedoe</div></article>`,
		},
		{
			"empty element",
			`<article></article>`,
		},
		{
			"unattributable",
			`<article><div data-testid="tweetText">A post body with no author anywhere here</div></article>`,
		},
		{
			// Longest-line text (0.5) plus raw-handle author (0.6) scores
			// 15 + 15 = 30, well under the threshold.
			"weak evidence below threshold",
			`<article>some stray line mentioning @someone in passing</article>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if post := assembler.Assemble(parsePost(t, tt.html), cfg); post != nil {
				t.Errorf("expected rejection, got post with quality %v", post.Quality)
			}
		})
	}
}

func TestAssembleDetectsRepost(t *testing.T) {
	cfg := twitterConfig(t)
	html := `<article>
		<div data-testid="socialContext">Alice reposted</div>
		<div data-testid="User-Name">@janedoe</div>
		<time datetime="2024-05-01T10:00:00Z">May 1</time>
		<div data-testid="tweetText">Original body being reposted right now</div>
	</article>`

	post := testAssembler(time.Now()).Assemble(parsePost(t, html), cfg)
	if post == nil {
		t.Fatal("expected a valid post")
	}
	if !post.IsRepost {
		t.Error("expected repost detection")
	}
}

func TestComputeIDStable(t *testing.T) {
	a := ComputeID("body", "jane", "2024-05-01T10:00:00Z")
	b := ComputeID("body", "jane", "2024-05-01T10:00:00Z")
	if a != b {
		t.Errorf("same content produced different ids: %q vs %q", a, b)
	}
	if a == "" {
		t.Error("expected non-empty id")
	}

	c := ComputeID("body", "john", "2024-05-01T10:00:00Z")
	if a == c {
		t.Error("different content produced the same id")
	}
}

func TestComputeIDOrderSensitive(t *testing.T) {
	a := ComputeID("ab", "c", "t")
	b := ComputeID("ba", "c", "t")
	if a == b {
		t.Error("expected order-sensitive hashing")
	}
}
