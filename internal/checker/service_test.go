package checker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-course/internal/attempts"
	"github.com/goliatone/go-course/internal/course"
)

func loadBasics(t *testing.T) *course.Course {
	t.Helper()
	fsys := fstest.MapFS{
		"manifest.json": {Data: []byte(`{"modules": [{"id": "m1", "title": "Basics", "topics": [{"id": "t1", "title": "Intro", "path": "intro.json"}]}]}`)},
		"intro.json": {Data: []byte(`{"title": "x", "theory": "**Hi**", "tasks": [
			{"id": "q1", "question": "2+2?", "answer": "4", "hint": "add"},
			{"id": "greet", "question": "Say hello", "answer": " Hello ", "hint": "wave"}
		]}`)},
	}
	c, _, err := course.NewLoader(fsys).Load(context.Background(), "manifest.json")
	if err != nil {
		t.Fatalf("load course: %v", err)
	}
	return c
}

func TestCheckAnswerEndToEnd(t *testing.T) {
	svc := NewService(loadBasics(t), attempts.NewStore())
	ctx := context.Background()

	first, err := svc.CheckAnswer(ctx, "q1", "4")
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if *first != (Result{Correct: true, Expected: "4", Hint: "add", Attempts: 1}) {
		t.Fatalf("unexpected first result %+v", *first)
	}

	second, err := svc.CheckAnswer(ctx, "q1", "5")
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if *second != (Result{Correct: false, Expected: "4", Hint: "add", Attempts: 2}) {
		t.Fatalf("unexpected second result %+v", *second)
	}
}

func TestCheckAnswerIgnoresCaseAndWhitespace(t *testing.T) {
	svc := NewService(loadBasics(t), attempts.NewStore())

	cases := []struct {
		answer string
		want   bool
	}{
		{"  HeLLo ", true},
		{"hello", true},
		{"hello!", false},
		{"", false},
	}
	for _, tc := range cases {
		result, err := svc.CheckAnswer(context.Background(), "greet", tc.answer)
		if err != nil {
			t.Fatalf("CheckAnswer(%q): %v", tc.answer, err)
		}
		if result.Correct != tc.want {
			t.Fatalf("CheckAnswer(%q).Correct = %v, want %v", tc.answer, result.Correct, tc.want)
		}
		if result.Expected != "hello" {
			t.Fatalf("expected normalized answer, got %q", result.Expected)
		}
	}
}

func TestCheckAnswerAuthoredExpected(t *testing.T) {
	svc := NewService(loadBasics(t), attempts.NewStore(), WithAuthoredExpected(true))

	result, err := svc.CheckAnswer(context.Background(), "greet", "hello")
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if !result.Correct || result.Expected != " Hello " {
		t.Fatalf("expected authored answer, got %+v", result)
	}
}

func TestCheckAnswerUnknownTask(t *testing.T) {
	store := attempts.NewStore()
	svc := NewService(loadBasics(t), store)

	for range 3 {
		result, err := svc.CheckAnswer(context.Background(), "missing", "4")
		if result != nil {
			t.Fatalf("expected no result for unknown task, got %+v", result)
		}
		if !course.IsNotFound(err, course.ResourceTask) {
			t.Fatalf("expected task not found, got %v", err)
		}
		if !goerrors.IsNotFound(err) {
			t.Fatalf("expected not_found category, got %v", err)
		}
	}
	if len(store.Snapshot()) != 0 {
		t.Fatalf("unknown task must not touch counters: %v", store.Snapshot())
	}
}

func TestCheckAnswerConcurrentSubmissions(t *testing.T) {
	svc := NewService(loadBasics(t), attempts.NewStore())
	const n = 200

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			answer := "4"
			if i%2 == 0 {
				answer = "wrong"
			}
			if _, err := svc.CheckAnswer(context.Background(), "q1", answer); err != nil {
				t.Errorf("CheckAnswer: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := svc.Attempts("q1"); got != n {
		t.Fatalf("expected %d attempts, got %d", n, got)
	}
	result, err := svc.CheckAnswer(context.Background(), "q1", "4")
	if err != nil {
		t.Fatalf("CheckAnswer: %v", err)
	}
	if result.Attempts != n+1 {
		t.Fatalf("expected attempts %d, got %d", n+1, result.Attempts)
	}
}

func TestCheckAnswerCancelledContext(t *testing.T) {
	store := attempts.NewStore()
	svc := NewService(loadBasics(t), store)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.CheckAnswer(ctx, "q1", "4"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if store.Count("q1") != 0 {
		t.Fatalf("cancelled submission must not count")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("\t Paris \n"); got != "paris" {
		t.Fatalf("Normalize = %q", got)
	}
}
