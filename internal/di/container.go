package di

import (
	"context"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-course/internal/attempts"
	"github.com/goliatone/go-course/internal/checker"
	"github.com/goliatone/go-course/internal/course"
	coursehttp "github.com/goliatone/go-course/internal/http"
	"github.com/goliatone/go-course/internal/logging"
	"github.com/goliatone/go-course/internal/logging/console"
	"github.com/goliatone/go-course/internal/logging/gologger"
	"github.com/goliatone/go-course/internal/markup"
	"github.com/goliatone/go-course/internal/runtimeconfig"
	"github.com/goliatone/go-course/pkg/interfaces"
)

// Container wires module dependencies: logging, the theory renderer, the
// loaded course, attempt counters, the answer checker and the HTTP API.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	fsys           fs.FS
	loadCtx        context.Context

	markupSvc *markup.Service
	renderer  interfaces.MarkupRenderer

	course   *course.Course
	report   *course.LoadReport
	attempts interfaces.AttemptStore

	checkerSvc *checker.Service
	api        *coursehttp.CourseAPI
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the logger provider selected from config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithFS sets the filesystem the manifest and topic paths resolve against.
// Defaults to os.DirFS(Config.Course.BaseDir).
func WithFS(fsys fs.FS) Option {
	return func(c *Container) {
		if fsys != nil {
			c.fsys = fsys
		}
	}
}

// WithLoadContext bounds the course load performed by NewContainer.
func WithLoadContext(ctx context.Context) Option {
	return func(c *Container) {
		if ctx != nil {
			c.loadCtx = ctx
		}
	}
}

// WithMarkupRenderer replaces the configured theory renderer.
func WithMarkupRenderer(renderer interfaces.MarkupRenderer) Option {
	return func(c *Container) {
		if renderer != nil {
			c.renderer = renderer
		}
	}
}

// WithCourse installs an already loaded course and skips loading from disk.
func WithCourse(model *course.Course) Option {
	return func(c *Container) {
		if model != nil {
			c.course = model
		}
	}
}

// WithAttemptStore overrides the in-memory attempt store.
func WithAttemptStore(store interfaces.AttemptStore) Option {
	return func(c *Container) {
		if store != nil {
			c.attempts = store
		}
	}
}

// NewContainer validates cfg, loads the course and wires the services on top of it.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{
		Config:  cfg,
		loadCtx: context.Background(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureMarkup(); err != nil {
		return nil, err
	}
	if err := c.loadCourse(); err != nil {
		return nil, err
	}

	if c.attempts == nil {
		c.attempts = attempts.NewStore()
	}
	c.checkerSvc = checker.NewService(c.course, c.attempts,
		checker.WithLogger(logging.CheckerLogger(c.loggerProvider)),
		checker.WithAuthoredExpected(cfg.Checker.AuthoredExpected),
	)
	c.api = coursehttp.NewCourseAPI(
		coursehttp.WithBasePath(cfg.HTTP.BasePath),
		coursehttp.WithCourse(c.course),
		coursehttp.WithChecker(c.checkerSvc),
		coursehttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	if !c.Config.Features.Logger {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(c.Config.Logging.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     c.Config.Logging.Level,
			Format:    c.Config.Logging.Format,
			AddSource: c.Config.Logging.AddSource,
			Focus:     c.Config.Logging.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(c.Config.Logging.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureMarkup() error {
	if c.renderer != nil {
		return nil
	}
	parser := c.Config.Markup.Parser
	svc, err := markup.NewService(
		runtimeconfig.NormalizeEngine(c.Config.Markup.Engine),
		markup.WithLogger(logging.MarkupLogger(c.loggerProvider)),
		markup.WithParseOptions(interfaces.ParseOptions{
			Extensions: append([]string(nil), parser.Extensions...),
			HardWraps:  parser.HardWraps,
			SafeMode:   parser.SafeMode,
		}),
	)
	if err != nil {
		return err
	}
	c.markupSvc = svc
	c.renderer = svc
	return nil
}

func (c *Container) loadCourse() error {
	if c.course != nil {
		return nil
	}
	if c.fsys == nil {
		baseDir := strings.TrimSpace(c.Config.Course.BaseDir)
		if baseDir == "" {
			baseDir = "."
		}
		c.fsys = os.DirFS(baseDir)
	}

	loader := course.NewLoader(c.fsys,
		course.WithRenderer(c.renderer),
		course.WithLogger(logging.LoaderLogger(c.loggerProvider)),
		course.WithStrict(c.Config.Course.StrictTopics),
		course.WithRejectDuplicateTasks(c.Config.Course.RejectDuplicateTasks),
	)
	model, report, err := loader.Load(c.loadCtx, c.Config.Course.ManifestPath)
	c.report = report
	if err != nil {
		return err
	}
	c.course = model
	return nil
}

// LoggerProvider returns the configured provider, nil when logging is disabled.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Logger returns a module-scoped logger from the configured provider.
func (c *Container) Logger(module string) interfaces.Logger {
	return logging.ModuleLogger(c.loggerProvider, module)
}

// MarkupRenderer returns the renderer used for lesson theory.
func (c *Container) MarkupRenderer() interfaces.MarkupRenderer {
	return c.renderer
}

// MarkupService returns the configured markup service, nil when a custom
// renderer was injected.
func (c *Container) MarkupService() *markup.Service {
	return c.markupSvc
}

func (c *Container) Course() *course.Course {
	return c.course
}

// LoadReport returns the report produced while loading the course. It is nil
// when the course was injected through WithCourse.
func (c *Container) LoadReport() *course.LoadReport {
	return c.report
}

func (c *Container) AttemptStore() interfaces.AttemptStore {
	return c.attempts
}

func (c *Container) CheckerService() *checker.Service {
	return c.checkerSvc
}

func (c *Container) CourseAPI() *coursehttp.CourseAPI {
	return c.api
}
