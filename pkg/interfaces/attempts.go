package interfaces

// AttemptStore tracks answer submissions per task id for the lifetime of the
// process. Increment must be atomic per key: concurrent submissions for the
// same task never lose an update and each caller observes its own
// post-increment value.
type AttemptStore interface {
	Increment(taskID string) int
	Count(taskID string) int
	Snapshot() map[string]int
}
