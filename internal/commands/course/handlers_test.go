package coursecmd

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-course/internal/course"
)

const manifest = `{"modules": [{"id": "m1", "title": "Basics", "topics": [
  {"id": "t1", "title": "Intro", "path": "intro.json"},
  {"id": "t2", "title": "Later", "path": "later.json"}
]}]}`

func run(t *testing.T, fsys fstest.MapFS, msg ValidateCourseCommand) (*course.LoadReport, error) {
	t.Helper()
	var captured *course.LoadReport
	h := NewValidateCourseHandler(fsys, nil, nil, func(_ context.Context, report *course.LoadReport) {
		captured = report
	})
	err := h.Execute(context.Background(), msg)
	return captured, err
}

func TestValidateCoursePasses(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(manifest)},
		"intro.json":    {Data: []byte(`{"tasks": [{"id": "q1", "answer": "4"}]}`)},
		"later.json":    {Data: []byte(`{"tasks": [{"id": "q2", "answer": "5"}]}`)},
	}

	report, err := run(t, fsys, ValidateCourseCommand{ManifestPath: "manifest.json"})
	if err != nil {
		t.Fatalf("expected valid course, got %v", err)
	}
	if report == nil || report.LessonsLoaded != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestValidateCourseRequiresManifestPath(t *testing.T) {
	_, err := run(t, fstest.MapFS{}, ValidateCourseCommand{ManifestPath: "  "})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateCourseReportsMissingTopics(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(manifest)},
		"intro.json":    {Data: []byte(`{"theory": "x"}`)},
	}

	_, err := run(t, fsys, ValidateCourseCommand{ManifestPath: "manifest.json"})
	if !errors.Is(err, ErrCourseIncomplete) {
		t.Fatalf("expected ErrCourseIncomplete, got %v", err)
	}

	if _, err := run(t, fsys, ValidateCourseCommand{ManifestPath: "manifest.json", AllowMissing: true}); err != nil {
		t.Fatalf("expected missing topics to be allowed, got %v", err)
	}
}

func TestValidateCourseReportsDuplicates(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(manifest)},
		"intro.json":    {Data: []byte(`{"tasks": [{"id": "q1"}]}`)},
		"later.json":    {Data: []byte(`{"tasks": [{"id": "q1"}]}`)},
	}

	report, err := run(t, fsys, ValidateCourseCommand{ManifestPath: "manifest.json"})
	if !errors.Is(err, ErrCourseIncomplete) {
		t.Fatalf("expected ErrCourseIncomplete, got %v", err)
	}
	if len(report.DuplicateTasks) != 1 {
		t.Fatalf("expected duplicate in report, got %+v", report.DuplicateTasks)
	}
}

func TestValidateCourseStrictFailsOnMalformedTopic(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(manifest)},
		"intro.json":    {Data: []byte(`{`)},
		"later.json":    {Data: []byte(`{}`)},
	}

	report, err := run(t, fsys, ValidateCourseCommand{ManifestPath: "manifest.json", Strict: true})
	if !errors.Is(err, course.ErrTopicMalformed) {
		t.Fatalf("expected ErrTopicMalformed, got %v", err)
	}
	if report == nil {
		t.Fatalf("expected report for failed run")
	}

	_, err = run(t, fsys, ValidateCourseCommand{ManifestPath: "manifest.json"})
	if !errors.Is(err, ErrCourseIncomplete) {
		t.Fatalf("expected non-strict run to collect the malformed topic, got %v", err)
	}
}

func TestValidateCourseMissingManifest(t *testing.T) {
	report, err := run(t, fstest.MapFS{}, ValidateCourseCommand{ManifestPath: "manifest.json"})
	if !errors.Is(err, ErrCourseIncomplete) {
		t.Fatalf("expected ErrCourseIncomplete, got %v", err)
	}
	if !report.ManifestMissing {
		t.Fatalf("expected ManifestMissing in report")
	}
}
