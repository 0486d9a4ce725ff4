package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-course/internal/checker"
	"github.com/goliatone/go-course/internal/course"
	"github.com/goliatone/go-course/internal/logging"
	"github.com/goliatone/go-course/pkg/interfaces"
)

// CourseReader exposes the read side of a loaded course.
type CourseReader interface {
	Modules() []course.Module
	Lessons() []course.Lesson
	Lesson(id string) (course.Lesson, error)
	LessonAt(index int) (course.Lesson, error)
	LessonTasks(id string) ([]course.Task, error)
	LessonTheory(id string) (string, error)
	Stats() course.Stats
}

// AnswerChecker checks a submission for a task.
type AnswerChecker interface {
	CheckAnswer(ctx context.Context, taskID, answer string) (*checker.Result, error)
}

// CourseAPI registers the learner-facing JSON endpoints.
type CourseAPI struct {
	basePath string
	course   CourseReader
	checker  AnswerChecker
	logger   interfaces.Logger
}

// APIOption mutates the CourseAPI configuration.
type APIOption func(*CourseAPI)

// NewCourseAPI constructs a CourseAPI instance.
func NewCourseAPI(opts ...APIOption) *CourseAPI {
	api := &CourseAPI{
		basePath: "/api",
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	return api
}

// WithBasePath overrides the base API path (defaults to "/api").
func WithBasePath(path string) APIOption {
	return func(api *CourseAPI) {
		if api == nil {
			return
		}
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.basePath = trimmed
		}
	}
}

// WithCourse wires the loaded course.
func WithCourse(reader CourseReader) APIOption {
	return func(api *CourseAPI) {
		if api != nil {
			api.course = reader
		}
	}
}

// WithChecker wires the answer checker.
func WithChecker(svc AnswerChecker) APIOption {
	return func(api *CourseAPI) {
		if api != nil {
			api.checker = svc
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(logger interfaces.Logger) APIOption {
	return func(api *CourseAPI) {
		if api != nil && logger != nil {
			api.logger = logger
		}
	}
}

// Register attaches the course endpoints to the provided mux.
func (api *CourseAPI) Register(mux *http.ServeMux) error {
	if mux == nil {
		return fmt.Errorf("http: mux is required")
	}
	if api == nil {
		return fmt.Errorf("http: course api is nil")
	}

	base := joinPath(api.basePath, "")

	api.registerLessonRoutes(mux, base)
	api.registerCheckRoutes(mux, base)
	api.registerHealthRoutes(mux, base)

	return nil
}

// Handler returns a mux with every route registered, wrapped in the
// request-id and access log middleware.
func (api *CourseAPI) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		return nil, err
	}
	return RequestLogger(api.logger)(mux), nil
}
