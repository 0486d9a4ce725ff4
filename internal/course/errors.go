package course

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

var (
	ErrManifestInvalid = errors.New("course: manifest invalid")
	ErrTopicMalformed  = errors.New("course: topic document malformed")
	ErrDuplicateTask   = errors.New("course: duplicate task id")
	ErrInvalidPath     = errors.New("course: invalid document path")
)

const (
	TextCodeTaskNotFound    = "TASK_NOT_FOUND"
	TextCodeLessonNotFound  = "LESSON_NOT_FOUND"
	TextCodeManifestInvalid = "MANIFEST_INVALID"
	TextCodeTopicMalformed  = "TOPIC_MALFORMED"
	TextCodeDuplicateTask   = "DUPLICATE_TASK"
)

const (
	ResourceTask   = "task"
	ResourceLesson = "lesson"
)

// NotFoundError represents a lookup that matched nothing in the course.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err carries a NotFoundError, optionally for one
// of the given resources.
func IsNotFound(err error, resources ...string) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	if len(resources) == 0 {
		return true
	}
	for _, resource := range resources {
		if nf.Resource == resource {
			return true
		}
	}
	return false
}

func lessonNotFound(key string) error {
	return goerrors.Wrap(&NotFoundError{Resource: ResourceLesson, Key: key}, goerrors.CategoryNotFound, "lesson not found").
		WithTextCode(TextCodeLessonNotFound).
		WithMetadata(map[string]any{"lesson_id": key})
}

func taskNotFound(key string) error {
	return goerrors.Wrap(&NotFoundError{Resource: ResourceTask, Key: key}, goerrors.CategoryNotFound, "task not found").
		WithTextCode(TextCodeTaskNotFound).
		WithMetadata(map[string]any{"task_id": key})
}

func manifestInvalid(path string, cause error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrManifestInvalid, path, cause), goerrors.CategoryBadInput, "course manifest invalid").
		WithTextCode(TextCodeManifestInvalid).
		WithMetadata(map[string]any{"path": path})
}

func topicMalformed(moduleID, topicID, path string, cause error) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s: %w", ErrTopicMalformed, path, cause), goerrors.CategoryBadInput, "course topic malformed").
		WithTextCode(TextCodeTopicMalformed).
		WithMetadata(map[string]any{"module_id": moduleID, "topic_id": topicID, "path": path})
}

func duplicateTask(dup DuplicateTask) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrDuplicateTask, dup.TaskID), goerrors.CategoryConflict, "duplicate task id").
		WithTextCode(TextCodeDuplicateTask).
		WithMetadata(map[string]any{
			"task_id":         dup.TaskID,
			"first_lesson_id": dup.FirstLessonID,
			"lesson_id":       dup.LessonID,
		})
}
