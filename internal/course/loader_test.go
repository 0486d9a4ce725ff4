package course

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"
)

const basicsManifest = `{
  "modules": [
    {"id": "m1", "title": "Basics", "topics": [
      {"id": "t1", "title": "Intro", "path": "intro.json"}
    ]}
  ]
}`

const introTopic = `{"title": "x", "theory": "**Hi**", "tasks": [{"id": "q1", "question": "2+2?", "answer": "4", "hint": "add"}]}`

func TestLoadBuildsLessonFromManifest(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(basicsManifest)},
		"intro.json":    {Data: []byte(introTopic)},
	}

	c, report, err := NewLoader(fsys).Load(context.Background(), "manifest.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	lessons := c.Lessons()
	if len(lessons) != 1 {
		t.Fatalf("expected one lesson, got %d", len(lessons))
	}
	lesson := lessons[0]
	if lesson.ID != "t1" || lesson.ModuleID != "m1" || lesson.TopicID != "t1" {
		t.Fatalf("unexpected lesson identity %+v", lesson)
	}
	if lesson.Title != "Basics - Intro" {
		t.Fatalf("expected composed title, got %q", lesson.Title)
	}
	if !strings.Contains(lesson.Theory, "<strong>Hi</strong>") {
		t.Fatalf("expected rendered theory, got %q", lesson.Theory)
	}
	if len(lesson.Tasks) != 1 || lesson.Tasks[0] != (Task{ID: "q1", Question: "2+2?", Answer: "4", Hint: "add"}) {
		t.Fatalf("expected verbatim task, got %+v", lesson.Tasks)
	}

	if !report.Complete() || report.ModulesLoaded != 1 || report.TopicsTotal != 1 || report.LessonsLoaded != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestLoadMissingManifestYieldsEmptyCourse(t *testing.T) {
	c, report, err := NewLoader(fstest.MapFS{}).Load(context.Background(), "data/modules/manifest.json")
	if err != nil {
		t.Fatalf("expected no error for missing manifest, got %v", err)
	}
	if stats := c.Stats(); stats.Modules != 0 || stats.Lessons != 0 {
		t.Fatalf("expected empty course, got %+v", stats)
	}
	if !report.ManifestMissing {
		t.Fatalf("expected ManifestMissing in report")
	}
	if len(c.Modules()) != 0 || len(c.Lessons()) != 0 {
		t.Fatalf("expected empty listings")
	}
}

func TestLoadSkipsMissingTopicsAndPreservesOrder(t *testing.T) {
	manifest := `{"modules": [
	  {"id": "m1", "title": "One", "topics": [
	    {"id": "a", "title": "A", "path": "a.json"},
	    {"id": "gone", "title": "Gone", "path": "gone.json"},
	    {"id": "b", "title": "B", "path": "./b.json"}
	  ]},
	  {"id": "m2", "title": "Two", "topics": [
	    {"id": "c", "title": "C", "path": "nested/c.json"}
	  ]}
	]}`
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(manifest)},
		"a.json":        {Data: []byte(`{"theory": "a"}`)},
		"b.json":        {Data: []byte(`{"theory": "b"}`)},
		"nested/c.json": {Data: []byte(`{"theory": "c"}`)},
	}

	c, report, err := NewLoader(fsys).Load(context.Background(), "manifest.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var ids []string
	for _, lesson := range c.Lessons() {
		ids = append(ids, lesson.ID)
	}
	if strings.Join(ids, ",") != "a,b,c" {
		t.Fatalf("unexpected lesson order %v", ids)
	}
	if c.Stats().Modules != 2 {
		t.Fatalf("expected both modules listed, got %d", c.Stats().Modules)
	}

	missing := report.SkippedBy(SkipReasonMissing)
	if len(missing) != 1 || missing[0].TopicID != "gone" || missing[0].ModuleID != "m1" {
		t.Fatalf("expected gone topic reported missing, got %+v", report.Skipped)
	}
	if report.TopicsTotal != 4 || report.LessonsLoaded != 3 {
		t.Fatalf("unexpected counts %+v", report)
	}
	if report.Complete() {
		t.Fatalf("report with skipped topics must not be complete")
	}
}

func TestLoadSkipsMalformedTopicWithWarning(t *testing.T) {
	manifest := `{"modules": [{"id": "m1", "title": "One", "topics": [
	  {"id": "bad", "title": "Bad", "path": "bad.json"},
	  {"id": "shape", "title": "Shape", "path": "shape.json"},
	  {"id": "ok", "title": "Ok", "path": "ok.json"}
	]}]}`
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(manifest)},
		"bad.json":      {Data: []byte(`{"theory": `)},
		"shape.json":    {Data: []byte(`{"tasks": [{"question": "no id"}]}`)},
		"ok.json":       {Data: []byte(`{"theory": "fine"}`)},
	}

	c, report, err := NewLoader(fsys).Load(context.Background(), "manifest.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Stats().Lessons != 1 {
		t.Fatalf("expected only the valid lesson, got %d", c.Stats().Lessons)
	}
	malformed := report.SkippedBy(SkipReasonMalformed)
	if len(malformed) != 2 {
		t.Fatalf("expected two malformed topics, got %+v", report.Skipped)
	}
	for _, skipped := range malformed {
		if skipped.Err == nil {
			t.Fatalf("expected skip cause for %s", skipped.TopicID)
		}
	}
}

func TestLoadStrictFailsOnMalformedTopic(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(basicsManifest)},
		"intro.json":    {Data: []byte(`not json`)},
	}

	c, report, err := NewLoader(fsys, WithStrict(true)).Load(context.Background(), "manifest.json")
	if err == nil {
		t.Fatalf("expected strict load to fail")
	}
	if c != nil {
		t.Fatalf("expected nil course on failure")
	}
	if report == nil || report.TopicsTotal != 1 {
		t.Fatalf("expected partial report, got %+v", report)
	}
	if !errors.Is(err, ErrTopicMalformed) {
		t.Fatalf("expected ErrTopicMalformed, got %v", err)
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) || richErr.TextCode != TextCodeTopicMalformed {
		t.Fatalf("expected TOPIC_MALFORMED text code, got %v", err)
	}
}

func TestLoadStrictStillSkipsMissingTopics(t *testing.T) {
	fsys := fstest.MapFS{"manifest.json": {Data: []byte(basicsManifest)}}

	c, report, err := NewLoader(fsys, WithStrict(true)).Load(context.Background(), "manifest.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Stats().Lessons != 0 || len(report.SkippedBy(SkipReasonMissing)) != 1 {
		t.Fatalf("expected missing topic skipped, report %+v", report)
	}
}

func TestLoadCorruptManifestIsFatal(t *testing.T) {
	cases := map[string]string{
		"invalid json":   `{"modules": [`,
		"schema failure": `{"modules": [{"id": "m1", "title": "One", "topics": [{"id": "t1"}]}]}`,
		"wrong type":     `{"modules": "nope"}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{"manifest.json": {Data: []byte(doc)}}
			_, _, err := NewLoader(fsys).Load(context.Background(), "manifest.json")
			if !errors.Is(err, ErrManifestInvalid) {
				t.Fatalf("expected ErrManifestInvalid, got %v", err)
			}
			if !goerrors.IsCategory(err, goerrors.CategoryBadInput) {
				t.Fatalf("expected bad input category, got %v", err)
			}
		})
	}
}

func TestLoadRejectsEscapingManifestPath(t *testing.T) {
	_, _, err := NewLoader(fstest.MapFS{}).Load(context.Background(), "../manifest.json")
	if !errors.Is(err, ErrInvalidPath) {
		t.Fatalf("expected ErrInvalidPath, got %v", err)
	}
}

func TestLoadSkipsEscapingTopicPath(t *testing.T) {
	manifest := `{"modules": [{"id": "m1", "title": "One", "topics": [{"id": "t1", "title": "T", "path": "../secret.json"}]}]}`
	fsys := fstest.MapFS{"manifest.json": {Data: []byte(manifest)}}

	_, report, err := NewLoader(fsys).Load(context.Background(), "manifest.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(report.SkippedBy(SkipReasonInvalidPath)) != 1 {
		t.Fatalf("expected invalid path skip, got %+v", report.Skipped)
	}
}

func TestLoadMarkdownTopic(t *testing.T) {
	manifest := `{"modules": [{"id": "m1", "title": "Basics", "topics": [{"id": "md", "title": "Markdown", "path": "topics/md.md"}]}]}`
	topic := "---\n" +
		"title: Markdown topic\n" +
		"tasks:\n" +
		"  - id: q-md\n" +
		"    question: \"Capital of France?\"\n" +
		"    answer: \"Paris\"\n" +
		"    hint: \"City of light\"\n" +
		"---\n" +
		"Some *theory*\nhere\n"
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(manifest)},
		"topics/md.md":  {Data: []byte(topic)},
	}

	c, _, err := NewLoader(fsys).Load(context.Background(), "manifest.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	lesson, err := c.Lesson("md")
	if err != nil {
		t.Fatalf("Lesson: %v", err)
	}
	if lesson.Theory != "Some <em>theory</em><br>here" {
		t.Fatalf("unexpected theory %q", lesson.Theory)
	}
	if len(lesson.Tasks) != 1 || lesson.Tasks[0].Answer != "Paris" || lesson.Tasks[0].Hint != "City of light" {
		t.Fatalf("unexpected tasks %+v", lesson.Tasks)
	}
}

func TestLoadReportsDuplicateTasksAndKeepsFirst(t *testing.T) {
	manifest := `{"modules": [{"id": "m1", "title": "One", "topics": [
	  {"id": "l1", "title": "L1", "path": "l1.json"},
	  {"id": "l2", "title": "L2", "path": "l2.json"}
	]}]}`
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(manifest)},
		"l1.json":       {Data: []byte(`{"tasks": [{"id": "dup", "answer": "first", "hint": "h1"}]}`)},
		"l2.json":       {Data: []byte(`{"tasks": [{"id": "dup", "answer": "second", "hint": "h2"}]}`)},
	}

	c, report, err := NewLoader(fsys).Load(context.Background(), "manifest.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(report.DuplicateTasks) != 1 {
		t.Fatalf("expected one duplicate, got %+v", report.DuplicateTasks)
	}
	dup := report.DuplicateTasks[0]
	if dup.TaskID != "dup" || dup.FirstLessonID != "l1" || dup.LessonID != "l2" {
		t.Fatalf("unexpected duplicate %+v", dup)
	}

	task, lesson, err := c.FindTask("dup")
	if err != nil {
		t.Fatalf("FindTask: %v", err)
	}
	if task.Answer != "first" || lesson.ID != "l1" {
		t.Fatalf("expected first match, got task %+v lesson %s", task, lesson.ID)
	}

	_, _, err = NewLoader(fsys, WithRejectDuplicateTasks(true)).Load(context.Background(), "manifest.json")
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}
}

func TestLoadHonoursCancelledContext(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(basicsManifest)},
		"intro.json":    {Data: []byte(introTopic)},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewLoader(fsys).Load(ctx, "manifest.json")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

type upperRenderer struct{}

func (upperRenderer) Render(_ context.Context, source string) (string, error) {
	return strings.ToUpper(source), nil
}

func TestLoadUsesConfiguredRenderer(t *testing.T) {
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(basicsManifest)},
		"intro.json":    {Data: []byte(introTopic)},
	}

	c, _, err := NewLoader(fsys, WithRenderer(upperRenderer{})).Load(context.Background(), "manifest.json")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	theory, err := c.LessonTheory("t1")
	if err != nil {
		t.Fatalf("LessonTheory: %v", err)
	}
	if theory != "**HI**" {
		t.Fatalf("expected custom renderer output, got %q", theory)
	}
}

func TestLoadCourseReadsFromWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "data", "modules"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	manifest := `{"modules": [{"id": "m1", "title": "Basics", "topics": [{"id": "t1", "title": "Intro", "path": "data/modules/intro.json"}]}]}`
	if err := os.WriteFile(filepath.Join(dir, "data", "modules", "manifest.json"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data", "modules", "intro.json"), []byte(introTopic), 0o644); err != nil {
		t.Fatalf("write topic: %v", err)
	}
	t.Chdir(dir)

	c, _, err := LoadCourse(context.Background(), "data/modules/manifest.json")
	if err != nil {
		t.Fatalf("LoadCourse: %v", err)
	}
	if c.Stats().Lessons != 1 {
		t.Fatalf("expected one lesson, got %+v", c.Stats())
	}
}
