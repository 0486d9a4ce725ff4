package course

import "strconv"

// Course is the loaded, read-only course model. All accessors return copies
// so the shared model cannot be mutated by callers; a Course is safe for
// concurrent use without locking.
type Course struct {
	modules []Module
	lessons []Lesson

	lessonIndex map[string]int
	taskIndex   map[string]taskLocation
}

type taskLocation struct {
	lesson int
	task   int
}

// Empty returns a course with no modules and no lessons.
func Empty() *Course {
	return newCourse(nil, nil)
}

// newCourse indexes lessons and tasks by id. When ids repeat the first
// occurrence in lesson order, then task order, is kept.
func newCourse(modules []Module, lessons []Lesson) *Course {
	c := &Course{
		modules:     modules,
		lessons:     lessons,
		lessonIndex: make(map[string]int, len(lessons)),
		taskIndex:   map[string]taskLocation{},
	}
	for li, lesson := range lessons {
		if _, ok := c.lessonIndex[lesson.ID]; !ok {
			c.lessonIndex[lesson.ID] = li
		}
		for ti, task := range lesson.Tasks {
			if _, ok := c.taskIndex[task.ID]; !ok {
				c.taskIndex[task.ID] = taskLocation{lesson: li, task: ti}
			}
		}
	}
	return c
}

func (c *Course) Modules() []Module {
	if c == nil {
		return []Module{}
	}
	out := make([]Module, len(c.modules))
	for i, m := range c.modules {
		out[i] = cloneModule(m)
	}
	return out
}

func (c *Course) Lessons() []Lesson {
	if c == nil {
		return []Lesson{}
	}
	out := make([]Lesson, len(c.lessons))
	for i, l := range c.lessons {
		out[i] = cloneLesson(l)
	}
	return out
}

// Lesson returns the first lesson with the given id.
func (c *Course) Lesson(id string) (Lesson, error) {
	if c == nil {
		return Lesson{}, lessonNotFound(id)
	}
	idx, ok := c.lessonIndex[id]
	if !ok {
		return Lesson{}, lessonNotFound(id)
	}
	return cloneLesson(c.lessons[idx]), nil
}

// LessonAt returns the lesson at a zero-based position in course order.
func (c *Course) LessonAt(index int) (Lesson, error) {
	if c == nil || index < 0 || index >= len(c.lessons) {
		return Lesson{}, lessonNotFound(strconv.Itoa(index))
	}
	return cloneLesson(c.lessons[index]), nil
}

func (c *Course) LessonTasks(id string) ([]Task, error) {
	lesson, err := c.Lesson(id)
	if err != nil {
		return nil, err
	}
	return lesson.Tasks, nil
}

func (c *Course) LessonTheory(id string) (string, error) {
	if c == nil {
		return "", lessonNotFound(id)
	}
	idx, ok := c.lessonIndex[id]
	if !ok {
		return "", lessonNotFound(id)
	}
	return c.lessons[idx].Theory, nil
}

// FindTask returns the first task with the given id and the lesson holding
// it, scanning lessons in course order and tasks in lesson order.
func (c *Course) FindTask(id string) (Task, Lesson, error) {
	if c == nil {
		return Task{}, Lesson{}, taskNotFound(id)
	}
	loc, ok := c.taskIndex[id]
	if !ok {
		return Task{}, Lesson{}, taskNotFound(id)
	}
	lesson := c.lessons[loc.lesson]
	return lesson.Tasks[loc.task], cloneLesson(lesson), nil
}

func (c *Course) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	return Stats{Modules: len(c.modules), Lessons: len(c.lessons)}
}
