package course_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	course "github.com/goliatone/go-course"
	"github.com/goliatone/go-course/internal/di"
)

func newTestModule(t *testing.T) *course.Module {
	t.Helper()

	cfg := course.DefaultConfig()
	cfg.Course.ManifestPath = "data/modules/manifest.json"
	cfg.Features.Logger = false

	module, err := course.New(cfg, di.WithFS(fstest.MapFS{
		"data/modules/manifest.json": {Data: []byte(`{"modules":[{"id":"m1","title":"Basics","topics":[{"id":"t1","title":"Intro","path":"data/modules/intro.json"}]}]}`)},
		"data/modules/intro.json":    {Data: []byte(`{"title":"x","theory":"**Hi**","tasks":[{"id":"q1","question":"2+2?","answer":"4","hint":"add"}]}`)},
	}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return module
}

func TestModuleServesLessonsAndChecksAnswers(t *testing.T) {
	module := newTestModule(t)

	if stats := module.Course().Stats(); stats.Modules != 1 || stats.Lessons != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	if report := module.Report(); report == nil || !report.Complete() {
		t.Fatalf("expected complete report, got %+v", report)
	}

	handler, err := module.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lessons/t1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var lesson course.Lesson
	if err := json.Unmarshal(rec.Body.Bytes(), &lesson); err != nil {
		t.Fatalf("decode lesson: %v", err)
	}
	if lesson.Title != "Basics - Intro" || lesson.Theory != "<strong>Hi</strong>" {
		t.Fatalf("unexpected lesson %+v", lesson)
	}

	body := strings.NewReader(`{"task_id":"q1","answer":"5"}`)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/check-answer", body))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	result, err := module.CheckAnswer(context.Background(), "q1", "4")
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if !result.Correct || result.Attempts != 2 || result.Expected != "4" {
		t.Fatalf("expected second attempt to be correct, got %+v", result)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := course.DefaultConfig()
	cfg.HTTP.Addr = ""
	if _, err := course.New(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}
