// internal/server/server_test.go
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/extract"
	"github.com/replyforge/postline/internal/pipeline"
	"github.com/replyforge/postline/internal/platform"
	"github.com/replyforge/postline/internal/reply"
)

const serverFixtureHTML = `
<main role="main">
  <article data-testid="tweet">
    <div data-testid="User-Name">@alice</div>
    <time datetime="2024-05-01T10:00:00Z">May 1</time>
    <div data-testid="tweetText">bullish on $BTC, adding more this week</div>
  </article>
</main>`

// stubGenerator returns a canned draft so handler tests need no network.
type stubGenerator struct {
	draft string
	err   error
}

func (g stubGenerator) Generate(_ context.Context, _ reply.Prompt) (string, error) {
	return g.draft, g.err
}

func newTestServer(t *testing.T, generator reply.Generator) (*Server, *pipeline.Pipeline) {
	t.Helper()
	plat := platform.NewRegistry().Get("twitter")
	root, err := dom.ParseDocument(serverFixtureHTML)
	if err != nil {
		t.Fatalf("ParseDocument failed: %v", err)
	}

	registry := prometheus.NewRegistry()
	pipe, err := pipeline.New(pipeline.DefaultConfig(), plat, dom.NewStaticFeed(root),
		pipeline.WithRegisterer(registry))
	if err != nil {
		t.Fatalf("building pipeline: %v", err)
	}
	if err := pipe.Init(); err != nil {
		t.Fatalf("starting pipeline: %v", err)
	}
	t.Cleanup(pipe.Teardown)
	pipe.Flush()

	return New(DefaultConfig(), pipe, generator, registry, nil), pipe
}

func storedPostID(t *testing.T, pipe *pipeline.Pipeline) string {
	t.Helper()
	posts := pipe.Store().SnapshotAll()
	if len(posts) != 1 {
		t.Fatalf("expected 1 extracted post, got %d", len(posts))
	}
	return posts[0].ID
}

func TestListPosts(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var payload struct {
		Count int            `json:"count"`
		Posts []extract.Post `json:"posts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload.Count != 1 || len(payload.Posts) != 1 {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Posts[0].Username != "alice" {
		t.Errorf("unexpected post: %+v", payload.Posts[0])
	}
}

func TestGetPost(t *testing.T) {
	srv, pipe := newTestServer(t, nil)
	id := storedPostID(t, pipe)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/"+id, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var post extract.Post
	if err := json.Unmarshal(rec.Body.Bytes(), &post); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if post.ID != id {
		t.Errorf("post.ID = %q, expected %q", post.ID, id)
	}
}

func TestGetPostNotFound(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", rec.Code)
	}
}

func TestReplyEndpoint(t *testing.T) {
	srv, pipe := newTestServer(t, stubGenerator{draft: "Same here, DCA all the way!"})
	id := storedPostID(t, pipe)

	rec := httptest.NewRecorder()
	url := fmt.Sprintf("/api/posts/%s/reply", id)
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, url, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var payload replyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if payload.Draft != "Same here, DCA all the way!" {
		t.Errorf("unexpected draft: %q", payload.Draft)
	}
	if payload.Sentiment <= 0 {
		t.Errorf("expected bullish market sentiment, got %v", payload.Sentiment)
	}
}

func TestReplyEndpointUnconfigured(t *testing.T) {
	srv, pipe := newTestServer(t, nil)
	id := storedPostID(t, pipe)

	rec := httptest.NewRecorder()
	url := fmt.Sprintf("/api/posts/%s/reply", id)
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, url, nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, expected 503", rec.Code)
	}
}

func TestReplyEndpointGeneratorFailure(t *testing.T) {
	srv, pipe := newTestServer(t, stubGenerator{err: fmt.Errorf("model offline")})
	id := storedPostID(t, pipe)

	rec := httptest.NewRecorder()
	url := fmt.Sprintf("/api/posts/%s/reply", id)
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, url, nil))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, expected 502", rec.Code)
	}
}

func TestDashboardAndHealth(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Sentiment Breakdown") {
		t.Error("dashboard missing sentiment chart")
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "postline_pipeline") {
		t.Error("metrics output missing pipeline series")
	}
}
