package course

import "time"

// SkipReason explains why a topic produced no lesson.
type SkipReason string

const (
	SkipReasonMissing     SkipReason = "missing"
	SkipReasonMalformed   SkipReason = "malformed"
	SkipReasonInvalidPath SkipReason = "invalid_path"
)

// SkippedTopic records a manifest topic that did not become a lesson.
type SkippedTopic struct {
	ModuleID string     `json:"module_id"`
	TopicID  string     `json:"topic_id"`
	Path     string     `json:"path"`
	Reason   SkipReason `json:"reason"`
	Err      error      `json:"-"`
}

// DuplicateTask records a task id already claimed by an earlier lesson or
// an earlier task of the same lesson.
type DuplicateTask struct {
	TaskID        string `json:"task_id"`
	FirstLessonID string `json:"first_lesson_id"`
	LessonID      string `json:"lesson_id"`
}

// LoadReport describes the outcome of a load, including partial results.
type LoadReport struct {
	ManifestPath    string          `json:"manifest_path"`
	ManifestMissing bool            `json:"manifest_missing"`
	ModulesLoaded   int             `json:"modules_loaded"`
	TopicsTotal     int             `json:"topics_total"`
	LessonsLoaded   int             `json:"lessons_loaded"`
	Skipped         []SkippedTopic  `json:"skipped,omitempty"`
	DuplicateTasks  []DuplicateTask `json:"duplicate_tasks,omitempty"`
	Duration        time.Duration   `json:"duration"`
}

// SkippedBy filters skipped topics by reason.
func (r *LoadReport) SkippedBy(reason SkipReason) []SkippedTopic {
	if r == nil {
		return nil
	}
	var out []SkippedTopic
	for _, s := range r.Skipped {
		if s.Reason == reason {
			out = append(out, s)
		}
	}
	return out
}

// Complete reports whether every manifest topic became a lesson and no task
// ids collided.
func (r *LoadReport) Complete() bool {
	if r == nil {
		return false
	}
	return !r.ManifestMissing && len(r.Skipped) == 0 && len(r.DuplicateTasks) == 0
}
