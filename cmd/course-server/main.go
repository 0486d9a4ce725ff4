package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	course "github.com/goliatone/go-course"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		log.Fatalf("course server: %v", err)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := parseConfig(args)
	if err != nil {
		return err
	}

	module, err := course.New(cfg)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	logger := module.Logger("course.server")

	if report := module.Report(); report != nil && !report.Complete() {
		logger.Warn("course.server.course_incomplete",
			"manifest_missing", report.ManifestMissing,
			"skipped", len(report.Skipped),
			"duplicate_tasks", len(report.DuplicateTasks),
		)
	}

	handler, err := module.Handler()
	if err != nil {
		return fmt.Errorf("build handler: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		stats := module.Course().Stats()
		logger.Info("course.server.listening",
			"addr", cfg.HTTP.Addr,
			"modules", stats.Modules,
			"lessons", stats.Lessons,
		)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	logger.Info("course.server.shutting_down")
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// parseConfig layers defaults, COURSE_* environment variables and flags, in
// that order of precedence.
func parseConfig(args []string) (course.Config, error) {
	cfg := course.DefaultConfig()
	if err := course.ApplyEnv(&cfg); err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("course-server", flag.ContinueOnError)
	manifest := fs.String("manifest", cfg.Course.ManifestPath, "Path to the course manifest, relative to the base dir")
	baseDir := fs.String("base-dir", cfg.Course.BaseDir, "Directory manifest and topic paths resolve against")
	addr := fs.String("addr", cfg.HTTP.Addr, "HTTP listen address")
	basePath := fs.String("base-path", cfg.HTTP.BasePath, "Base path of the JSON API")
	engine := fs.String("engine", cfg.Markup.Engine, "Theory renderer: course or goldmark")
	strict := fs.Bool("strict", cfg.Course.StrictTopics, "Fail startup on malformed topic documents")
	logProvider := fs.String("log-provider", cfg.Logging.Provider, "Logger provider: console or gologger")
	logLevel := fs.String("log-level", cfg.Logging.Level, "Minimum log level")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Course.ManifestPath = *manifest
	cfg.Course.BaseDir = *baseDir
	cfg.HTTP.Addr = *addr
	cfg.HTTP.BasePath = *basePath
	cfg.Markup.Engine = *engine
	cfg.Course.StrictTopics = *strict
	cfg.Logging.Provider = *logProvider
	cfg.Logging.Level = *logLevel
	if course.NormalizeEngine(cfg.Markup.Engine) == course.MarkupEngineGoldmark {
		cfg.Features.Goldmark = true
	}

	return cfg, cfg.Validate()
}
