package coursecmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	command "github.com/goliatone/go-command"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-course/internal/commands"
	"github.com/goliatone/go-course/internal/course"
	"github.com/goliatone/go-course/internal/logging"
	"github.com/goliatone/go-course/pkg/interfaces"
)

const validateOperation = "course.validate"

const TextCodeCourseIncomplete = "COURSE_INCOMPLETE"

// ErrCourseIncomplete is returned when a course loads but some topics were
// skipped, task ids collide, or the manifest is missing.
var ErrCourseIncomplete = errors.New("course command: course incomplete")

var _ command.Commander[ValidateCourseCommand] = (*ValidateCourseHandler)(nil)

// ReportFunc receives the load report of every validation run, including
// failed ones.
type ReportFunc func(ctx context.Context, report *course.LoadReport)

// ValidateCourseHandler runs the course loader as a linter.
type ValidateCourseHandler struct {
	inner *commands.Handler[ValidateCourseCommand]
}

// NewValidateCourseHandler builds a handler reading documents from fsys.
func NewValidateCourseHandler(
	fsys fs.FS,
	renderer interfaces.MarkupRenderer,
	logger interfaces.Logger,
	onReport ReportFunc,
	opts ...commands.HandlerOption[ValidateCourseCommand],
) *ValidateCourseHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ValidateCourseCommand) error {
		loader := course.NewLoader(fsys,
			course.WithRenderer(renderer),
			course.WithLogger(baseLogger),
			course.WithStrict(msg.Strict),
		)
		_, report, err := loader.Load(ctx, msg.ManifestPath)
		if onReport != nil {
			onReport(ctx, report)
		}
		if err != nil {
			return err
		}
		return checkReport(report, msg.AllowMissing)
	}

	handlerOpts := []commands.HandlerOption[ValidateCourseCommand]{
		commands.WithLogger[ValidateCourseCommand](baseLogger),
		commands.WithOperation[ValidateCourseCommand](validateOperation),
		commands.WithMessageFields(func(msg ValidateCourseCommand) map[string]any {
			fields := map[string]any{"manifest_path": msg.ManifestPath}
			if msg.Strict {
				fields["strict"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ValidateCourseCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ValidateCourseHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ValidateCourseCommand].
func (h *ValidateCourseHandler) Execute(ctx context.Context, msg ValidateCourseCommand) error {
	return h.inner.Execute(ctx, msg)
}

func checkReport(report *course.LoadReport, allowMissing bool) error {
	if report == nil {
		return nil
	}
	var problems []string
	if report.ManifestMissing {
		problems = append(problems, "manifest missing")
	}
	for _, skipped := range report.Skipped {
		if skipped.Reason == course.SkipReasonMissing && allowMissing {
			continue
		}
		problems = append(problems, fmt.Sprintf("topic %s/%s %s (%s)", skipped.ModuleID, skipped.TopicID, skipped.Reason, skipped.Path))
	}
	for _, dup := range report.DuplicateTasks {
		problems = append(problems, fmt.Sprintf("task %s duplicated in %s (first in %s)", dup.TaskID, dup.LessonID, dup.FirstLessonID))
	}
	if len(problems) == 0 {
		return nil
	}
	return goerrors.Wrap(fmt.Errorf("%w: %d problem(s)", ErrCourseIncomplete, len(problems)), goerrors.CategoryValidation, "course validation failed").
		WithTextCode(TextCodeCourseIncomplete).
		WithMetadata(map[string]any{"problems": problems})
}
