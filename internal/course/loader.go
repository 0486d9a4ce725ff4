package course

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/goliatone/go-course/internal/logging"
	"github.com/goliatone/go-course/internal/markup"
	"github.com/goliatone/go-course/pkg/interfaces"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithRenderer sets the renderer applied to lesson theory. The course markup
// pipeline is used when unset.
func WithRenderer(renderer interfaces.MarkupRenderer) LoaderOption {
	return func(l *Loader) {
		if renderer != nil {
			l.renderer = renderer
		}
	}
}

// WithLogger overrides the loader logger.
func WithLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithStrict makes malformed topic documents fail the whole load instead of
// being skipped.
func WithStrict(strict bool) LoaderOption {
	return func(l *Loader) {
		l.strict = strict
	}
}

// WithRejectDuplicateTasks makes a repeated task id fail the load.
func WithRejectDuplicateTasks(reject bool) LoaderOption {
	return func(l *Loader) {
		l.rejectDuplicates = reject
	}
}

// WithClock overrides the clock used to time loads.
func WithClock(clock func() time.Time) LoaderOption {
	return func(l *Loader) {
		if clock != nil {
			l.now = clock
		}
	}
}

// Loader builds a Course from a manifest and its topic documents. Manifest
// and topic paths are resolved against the loader filesystem.
type Loader struct {
	fsys             fs.FS
	renderer         interfaces.MarkupRenderer
	logger           interfaces.Logger
	strict           bool
	rejectDuplicates bool
	now              func() time.Time
}

// NewLoader constructs a loader over fsys. A nil fsys reads from the working
// directory.
func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	if fsys == nil {
		fsys = os.DirFS(".")
	}
	l := &Loader{
		fsys:     fsys,
		renderer: pipelineRenderer{},
		logger:   logging.NoOp(),
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// LoadCourse loads a course relative to the working directory.
func LoadCourse(ctx context.Context, manifestPath string, opts ...LoaderOption) (*Course, *LoadReport, error) {
	return NewLoader(os.DirFS("."), opts...).Load(ctx, manifestPath)
}

// Load reads the manifest and every topic it references. A missing manifest
// yields an empty course and a report flagged ManifestMissing. Missing topic
// files are skipped; malformed ones are skipped with a warning unless the
// loader is strict. The report is returned even when err is non-nil.
func (l *Loader) Load(ctx context.Context, manifestPath string) (*Course, *LoadReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := l.now()
	report := &LoadReport{ManifestPath: manifestPath}
	logger := logging.WithFields(l.logger, map[string]any{"manifest_path": manifestPath})

	finish := func(c *Course, err error) (*Course, *LoadReport, error) {
		report.Duration = l.now().Sub(start)
		if err != nil {
			logging.WithError(logger, err).Error("course.loader.failed")
			return nil, report, err
		}
		report.ModulesLoaded = c.Stats().Modules
		report.LessonsLoaded = c.Stats().Lessons
		logger.Info("course.loader.loaded",
			"modules", report.ModulesLoaded,
			"topics", report.TopicsTotal,
			"lessons", report.LessonsLoaded,
			"skipped", len(report.Skipped),
			"duplicate_tasks", len(report.DuplicateTasks),
			"duration", report.Duration,
		)
		return c, report, nil
	}

	if err := ctx.Err(); err != nil {
		return finish(nil, err)
	}

	name, err := documentName(manifestPath)
	if err != nil {
		return finish(nil, manifestInvalid(manifestPath, err))
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			report.ManifestMissing = true
			logger.Warn("course.loader.manifest_missing")
			return finish(Empty(), nil)
		}
		return finish(nil, manifestInvalid(manifestPath, err))
	}

	manifest, err := decodeManifest(data)
	if err != nil {
		return finish(nil, manifestInvalid(manifestPath, err))
	}

	modules := make([]Module, 0, len(manifest.Modules))
	lessons := make([]Lesson, 0)
	for _, module := range manifest.Modules {
		module = cloneModule(module)
		modules = append(modules, module)

		for _, topic := range module.Topics {
			if err := ctx.Err(); err != nil {
				return finish(nil, err)
			}
			report.TopicsTotal++

			lesson, skip, err := l.loadTopic(ctx, module, topic)
			if err != nil {
				return finish(nil, err)
			}
			if skip != nil {
				report.Skipped = append(report.Skipped, *skip)
				continue
			}
			lessons = append(lessons, lesson)
		}
	}

	report.DuplicateTasks = findDuplicateTasks(lessons)
	for _, dup := range report.DuplicateTasks {
		logger.Warn("course.loader.duplicate_task",
			"task_id", dup.TaskID,
			"first_lesson_id", dup.FirstLessonID,
			"lesson_id", dup.LessonID,
		)
	}
	if l.rejectDuplicates && len(report.DuplicateTasks) > 0 {
		return finish(nil, duplicateTask(report.DuplicateTasks[0]))
	}

	return finish(newCourse(modules, lessons), nil)
}

// loadTopic resolves a single topic. It returns either a lesson, a skip
// record, or a fatal error when the loader is strict or ctx is done.
func (l *Loader) loadTopic(ctx context.Context, module Module, topic TopicRef) (Lesson, *SkippedTopic, error) {
	logger := logging.WithTopicContext(l.logger, module.ID, topic.ID, topic.Path)
	skip := func(reason SkipReason, err error) *SkippedTopic {
		return &SkippedTopic{
			ModuleID: module.ID,
			TopicID:  topic.ID,
			Path:     topic.Path,
			Reason:   reason,
			Err:      err,
		}
	}

	name, err := documentName(topic.Path)
	if err != nil {
		logging.WithError(logger, err).Warn("course.loader.topic_skipped", "reason", SkipReasonInvalidPath)
		if l.strict {
			return Lesson{}, nil, topicMalformed(module.ID, topic.ID, topic.Path, err)
		}
		return Lesson{}, skip(SkipReasonInvalidPath, err), nil
	}

	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Warn("course.loader.topic_skipped", "reason", SkipReasonMissing)
			return Lesson{}, skip(SkipReasonMissing, err), nil
		}
		return l.malformed(logger, module, topic, err, skip)
	}

	doc, err := decodeTopic(name, data)
	if err != nil {
		return l.malformed(logger, module, topic, err, skip)
	}

	theory, err := l.renderer.Render(ctx, doc.Theory)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Lesson{}, nil, ctxErr
		}
		return l.malformed(logger, module, topic, err, skip)
	}

	logger.Debug("course.loader.topic_loaded", "tasks", len(doc.Tasks))
	return Lesson{
		ID:       topic.ID,
		Title:    composeTitle(module, topic),
		ModuleID: module.ID,
		TopicID:  topic.ID,
		Theory:   theory,
		Tasks:    cloneTasks(doc.Tasks),
	}, nil, nil
}

func (l *Loader) malformed(
	logger interfaces.Logger,
	module Module,
	topic TopicRef,
	err error,
	skip func(SkipReason, error) *SkippedTopic,
) (Lesson, *SkippedTopic, error) {
	if l.strict {
		return Lesson{}, nil, topicMalformed(module.ID, topic.ID, topic.Path, err)
	}
	logging.WithError(logger, err).Warn("course.loader.topic_skipped", "reason", SkipReasonMalformed)
	return Lesson{}, skip(SkipReasonMalformed, err), nil
}

func findDuplicateTasks(lessons []Lesson) []DuplicateTask {
	owners := map[string]string{}
	var dups []DuplicateTask
	for _, lesson := range lessons {
		for _, task := range lesson.Tasks {
			first, seen := owners[task.ID]
			if !seen {
				owners[task.ID] = lesson.ID
				continue
			}
			dups = append(dups, DuplicateTask{
				TaskID:        task.ID,
				FirstLessonID: first,
				LessonID:      lesson.ID,
			})
		}
	}
	return dups
}

// pipelineRenderer adapts the course markup pipeline to MarkupRenderer.
type pipelineRenderer struct{}

func (pipelineRenderer) Render(_ context.Context, source string) (string, error) {
	return markup.Render(source), nil
}
