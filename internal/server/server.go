// internal/server/server.go

// Package server exposes the extraction store over HTTP: a JSON API for
// posts and reply drafts, the chart dashboard, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/replyforge/postline/internal/extract"
	"github.com/replyforge/postline/internal/intel"
	"github.com/replyforge/postline/internal/pipeline"
	"github.com/replyforge/postline/internal/platform"
	"github.com/replyforge/postline/internal/report"
	"github.com/replyforge/postline/internal/reply"
	"github.com/replyforge/postline/internal/utils"
)

// Config holds the HTTP listener settings.
type Config struct {
	Address      string        `yaml:"address" json:"address"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
}

// DefaultConfig returns sensible listener defaults.
func DefaultConfig() Config {
	return Config{
		Address:      ":8089",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server wires the pipeline store, reply generator, and intel engine into
// HTTP handlers.
type Server struct {
	config    Config
	pipe      *pipeline.Pipeline
	generator reply.Generator
	engine    *intel.Engine
	registry  *prometheus.Registry
	log       utils.Logger
	http      *http.Server
}

// New builds a Server. generator may be nil, in which case the reply
// endpoint reports unavailability. registry may be nil to disable the
// metrics endpoint.
func New(config Config, pipe *pipeline.Pipeline, generator reply.Generator, registry *prometheus.Registry, log utils.Logger) *Server {
	if log == nil {
		log = utils.NopLogger()
	}
	return &Server{
		config:    config,
		pipe:      pipe,
		generator: generator,
		engine:    intel.NewEngine(),
		registry:  registry,
		log:       log,
	}
}

// Router builds the route table. Exposed separately so tests can drive
// handlers without a listener.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/posts", s.handleListPosts).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id}", s.handleGetPost).Methods(http.MethodGet)
	r.HandleFunc("/api/posts/{id}/reply", s.handleReply).Methods(http.MethodPost)
	r.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	if s.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:         s.config.Address,
		Handler:      s.Router(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.log.WithField("address", s.config.Address).Info("HTTP server listening")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts := s.pipe.Store().SnapshotAll()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(posts),
		"posts": posts,
	})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	post, ok := s.pipe.Store().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// replyResponse is the payload for a generated reply draft.
type replyResponse struct {
	PostID      string            `json:"postId"`
	Draft       string            `json:"draft"`
	Suggestions intel.Suggestions `json:"suggestions"`
	Sentiment   float64           `json:"marketSentiment"`
}

func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	if s.generator == nil {
		writeError(w, http.StatusServiceUnavailable, "reply generation is not configured")
		return
	}

	id := mux.Vars(r)["id"]
	post, ok := s.pipe.Store().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "post not found")
		return
	}

	pc := s.promptContext(*post)
	draft, err := s.generator.Generate(r.Context(), reply.BuildPrompt(pc))
	if err != nil {
		s.log.WithField("post_id", id).Errorf("reply generation failed: %v", err)
		writeError(w, http.StatusBadGateway, "reply generation failed")
		return
	}

	writeJSON(w, http.StatusOK, replyResponse{
		PostID:      id,
		Draft:       draft,
		Suggestions: pc.Suggestions,
		Sentiment:   pc.Sentiment,
	})
}

func (s *Server) promptContext(post extract.Post) reply.PromptContext {
	var plat platform.Config
	if p := s.pipe.Platform(); p != nil {
		plat = *p
	}
	return reply.PromptContext{
		Post:        post,
		Platform:    plat,
		Suggestions: s.engine.Suggest(post.Text),
		Sentiment:   intel.MarketSentiment(post.Text),
		Detections:  s.engine.Detect(post.Text),
	}
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.Render(w, s.pipe.Store().SnapshotAll()); err != nil {
		s.log.Errorf("dashboard render failed: %v", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"posts":  s.pipe.Store().Len(),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
