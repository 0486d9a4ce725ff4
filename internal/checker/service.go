// Package checker validates submitted answers against course tasks and keeps
// per-task attempt counts.
package checker

import (
	"context"
	"strings"

	"github.com/goliatone/go-course/internal/course"
	"github.com/goliatone/go-course/internal/logging"
	"github.com/goliatone/go-course/pkg/interfaces"
)

// CourseReader resolves a task id to the first matching task in course order.
type CourseReader interface {
	FindTask(id string) (course.Task, course.Lesson, error)
}

// Result is the outcome of a single submission.
type Result struct {
	Correct  bool   `json:"correct"`
	Expected string `json:"expected"`
	Hint     string `json:"hint"`
	Attempts int    `json:"attempts"`
}

// Option configures the checker service.
type Option func(*Service)

// WithLogger overrides the checker logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuthoredExpected returns the stored answer as authored in Result.Expected
// instead of its trimmed, lower-cased form.
func WithAuthoredExpected(enabled bool) Option {
	return func(s *Service) {
		s.authoredExpected = enabled
	}
}

// Service checks answers. It is safe for concurrent use as long as the
// course reader and attempt store are.
type Service struct {
	course           CourseReader
	attempts         interfaces.AttemptStore
	logger           interfaces.Logger
	authoredExpected bool
}

func NewService(reader CourseReader, store interfaces.AttemptStore, opts ...Option) *Service {
	s := &Service{
		course:   reader,
		attempts: store,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CheckAnswer compares answer with the stored answer of taskID. An unknown
// task returns a not-found error and leaves every counter untouched; a known
// task has its counter incremented before the result is built.
func (s *Service) CheckAnswer(ctx context.Context, taskID, answer string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	logger := s.logger.WithContext(ctx)

	task, lesson, err := s.course.FindTask(taskID)
	if err != nil {
		logger.Debug("course.checker.task_not_found", "task_id", taskID)
		return nil, err
	}

	attempts := s.attempts.Increment(task.ID)
	expected := Normalize(task.Answer)
	result := &Result{
		Correct:  Normalize(answer) == expected,
		Expected: expected,
		Hint:     task.Hint,
		Attempts: attempts,
	}
	if s.authoredExpected {
		result.Expected = task.Answer
	}

	logger.Info("course.checker.answer_checked",
		"task_id", task.ID,
		"lesson_id", lesson.ID,
		"correct", result.Correct,
		"attempts", result.Attempts,
	)
	return result, nil
}

// Attempts returns the current counter for taskID.
func (s *Service) Attempts(taskID string) int {
	return s.attempts.Count(taskID)
}

// Normalize trims surrounding whitespace and lower-cases s.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
