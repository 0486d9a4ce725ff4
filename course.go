// Package course serves an interactive course: it aggregates modules and
// topics into lessons, renders lesson theory, checks answers and exposes
// everything through a JSON API.
package course

import (
	"context"
	"net/http"

	"github.com/goliatone/go-course/internal/checker"
	coursemodel "github.com/goliatone/go-course/internal/course"
	"github.com/goliatone/go-course/internal/di"
	"github.com/goliatone/go-course/pkg/interfaces"
)

// Lesson exports the lesson read model.
type Lesson = coursemodel.Lesson

// Task exports the task read model.
type Task = coursemodel.Task

// CourseModule exports a manifest module.
type CourseModule = coursemodel.Module

// Stats exports the module and lesson counts.
type Stats = coursemodel.Stats

// LoadReport exports the aggregation report.
type LoadReport = coursemodel.LoadReport

// CheckResult exports the outcome of an answer submission.
type CheckResult = checker.Result

// Module represents the top level course runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a course module using the provided configuration and
// optional DI overrides. The course is loaded before New returns.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

func (m *Module) Course() *coursemodel.Course {
	return m.container.Course()
}

func (m *Module) Report() *LoadReport {
	return m.container.LoadReport()
}

func (m *Module) Checker() *checker.Service {
	return m.container.CheckerService()
}

// CheckAnswer is a convenience wrapper around the checker service.
func (m *Module) CheckAnswer(ctx context.Context, taskID, answer string) (*CheckResult, error) {
	return m.container.CheckerService().CheckAnswer(ctx, taskID, answer)
}

// Handler returns the JSON API with request logging applied.
func (m *Module) Handler() (http.Handler, error) {
	return m.container.CourseAPI().Handler()
}

func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Logger returns a module-scoped logger from the configured provider.
func (m *Module) Logger(module string) interfaces.Logger {
	return m.container.Logger(module)
}
