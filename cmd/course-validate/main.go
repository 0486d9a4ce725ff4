package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/goliatone/go-course/internal/commands"
	coursecmd "github.com/goliatone/go-course/internal/commands/course"
	"github.com/goliatone/go-course/internal/course"
	"github.com/goliatone/go-course/internal/logging"
	"github.com/goliatone/go-course/internal/logging/console"
	"github.com/goliatone/go-course/internal/markup"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("course validate: %v", err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("course-validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	manifest := fs.String("manifest", "data/modules/manifest.json", "Path to the course manifest, relative to the base dir")
	baseDir := fs.String("base-dir", ".", "Directory manifest and topic paths resolve against")
	engine := fs.String("engine", markup.EngineCourse, "Theory renderer: course or goldmark")
	strict := fs.Bool("strict", false, "Stop at the first malformed topic")
	allowMissing := fs.Bool("allow-missing", false, "Accept topics whose documents are absent")
	logLevel := fs.String("log-level", "warn", "Minimum log level written to stderr")

	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := console.Options{Writer: stderr}
	if level, ok := console.ParseLevel(*logLevel); ok {
		opts.MinLevel = &level
	}
	provider := console.NewProvider(opts)

	renderer, err := markup.NewService(*engine, markup.WithLogger(logging.MarkupLogger(provider)))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	var encodeErr error
	onReport := func(_ context.Context, report *course.LoadReport) {
		if report != nil {
			encodeErr = encoder.Encode(report)
		}
	}

	handler := coursecmd.NewValidateCourseHandler(os.DirFS(*baseDir), renderer, commands.CommandLogger(provider, "course"), onReport)
	cmd := coursecmd.ValidateCourseCommand{
		ManifestPath: *manifest,
		Strict:       *strict,
		AllowMissing: *allowMissing,
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute validate command: %w", err)
	}
	if encodeErr != nil {
		return fmt.Errorf("encode report: %w", encodeErr)
	}
	return nil
}
