// cmd/postline/run.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/replyforge/postline/internal/config"
	"github.com/replyforge/postline/internal/dom"
	"github.com/replyforge/postline/internal/output"
	"github.com/replyforge/postline/internal/pipeline"
	"github.com/replyforge/postline/internal/platform"
	"github.com/replyforge/postline/internal/reply"
	"github.com/replyforge/postline/internal/server"
	"github.com/replyforge/postline/internal/utils"
)

// runPipeline watches the configured live feed, serving the API until
// interrupted, then flushes the store to the configured outputs.
func runPipeline(configFile string) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return err
	}

	log := utils.NewLoggerWithLevel(utils.ParseLogLevel(cfg.LogLevel))

	plat, err := resolvePlatform(cfg)
	if err != nil {
		return err
	}

	feed, err := dom.NewLiveFeed(&cfg.Live)
	if err != nil {
		return fmt.Errorf("failed to start live feed: %w", err)
	}

	registry := prometheus.NewRegistry()
	pipe, err := pipeline.New(cfg.Pipeline, plat, feed,
		pipeline.WithLogger(log),
		pipeline.WithRegisterer(registry),
	)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	var generator reply.Generator
	if cfg.Reply.APIKey != "" {
		generator = reply.NewClient(cfg.Reply, log)
	}

	srv := server.New(cfg.Server, pipe, generator, registry, log)

	if err := pipe.Init(); err != nil {
		return fmt.Errorf("failed to start pipeline: %w", err)
	}
	defer pipe.Teardown()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)

	return flushOutputs(cfg, pipe, log)
}

// scrapeFile runs one extraction pass over a saved HTML document and
// writes the results to the configured outputs.
func scrapeFile(configFile, htmlFile string) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return err
	}

	log := utils.NewLoggerWithLevel(utils.ParseLogLevel(cfg.LogLevel))

	plat, err := resolvePlatform(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(htmlFile)
	if err != nil {
		return fmt.Errorf("failed to read HTML file: %w", err)
	}
	root, err := dom.ParseDocument(string(data))
	if err != nil {
		return fmt.Errorf("failed to parse HTML: %w", err)
	}

	pipe, err := pipeline.New(cfg.Pipeline, plat, dom.NewStaticFeed(root), pipeline.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	if err := pipe.Init(); err != nil {
		return fmt.Errorf("failed to start pipeline: %w", err)
	}
	pipe.Flush()
	defer pipe.Teardown()

	fmt.Printf("Extracted %d posts from %s\n", pipe.Store().Len(), htmlFile)
	return flushOutputs(cfg, pipe, log)
}

func resolvePlatform(cfg *config.AppConfig) (*platform.Config, error) {
	if cfg.PlatformFile != "" {
		return platform.LoadFromFile(cfg.PlatformFile)
	}
	registry := platform.NewRegistry()
	plat := registry.Get(cfg.Platform)
	if plat == nil {
		return nil, fmt.Errorf("unknown platform %q (available: %v)", cfg.Platform, registry.IDs())
	}
	return plat, nil
}

func flushOutputs(cfg *config.AppConfig, pipe *pipeline.Pipeline, log utils.Logger) error {
	if len(cfg.Outputs) == 0 {
		return nil
	}

	manager, err := output.NewManager(cfg.Outputs...)
	if err != nil {
		return fmt.Errorf("failed to open outputs: %w", err)
	}
	defer manager.Close()

	posts := pipe.Store().SnapshotAll()
	if err := manager.Write(posts); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	log.WithField("posts", len(posts)).Info("results written")
	return nil
}
