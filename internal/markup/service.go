package markup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-course/internal/logging"
	"github.com/goliatone/go-course/pkg/interfaces"
)

const (
	EngineCourse   = "course"
	EngineGoldmark = "goldmark"
)

var ErrUnknownEngine = errors.New("markup: unknown engine")

// ServiceOption configures the markup service.
type ServiceOption func(*Service)

// WithLogger overrides the logger used by the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithParseOptions sets the goldmark options used when the goldmark engine
// is selected.
func WithParseOptions(opts interfaces.ParseOptions) ServiceOption {
	return func(s *Service) {
		s.parseOptions = opts
	}
}

// WithPipeline replaces the course engine rule pipeline.
func WithPipeline(p *Pipeline) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.pipeline = p
		}
	}
}

// Service dispatches Render calls to the configured engine.
type Service struct {
	engine       string
	pipeline     *Pipeline
	parseOptions interfaces.ParseOptions
	goldmark     *GoldmarkRenderer
	logger       interfaces.Logger
}

var _ interfaces.MarkupRenderer = (*Service)(nil)

// NewService builds a renderer for engine ("course" when empty).
func NewService(engine string, opts ...ServiceOption) (*Service, error) {
	s := &Service{
		engine:   strings.ToLower(strings.TrimSpace(engine)),
		pipeline: defaultPipeline,
		logger:   logging.NoOp(),
	}
	if s.engine == "" {
		s.engine = EngineCourse
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	switch s.engine {
	case EngineCourse:
	case EngineGoldmark:
		s.goldmark = NewGoldmarkRenderer(s.parseOptions)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, engine)
	}

	s.logger.Debug("course.markup.engine_selected", "engine", s.engine)
	return s, nil
}

// Engine reports the active engine name.
func (s *Service) Engine() string {
	return s.engine
}

func (s *Service) Render(ctx context.Context, source string) (string, error) {
	if s.goldmark != nil {
		out, err := s.goldmark.Render(ctx, source)
		if err != nil {
			logging.WithError(s.logger, err).Warn("course.markup.render_failed", "engine", s.engine)
			return "", err
		}
		return out, nil
	}
	return s.pipeline.Render(source), nil
}
