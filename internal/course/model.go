package course

// Module groups topics in manifest order.
type Module struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Topics []TopicRef `json:"topics"`
}

// TopicRef points at the document holding a topic's theory and tasks.
type TopicRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Task is a single question with its expected answer and hint.
type Task struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Hint     string `json:"hint" yaml:"hint"`
}

// Lesson is a topic resolved against its document. Title is composed as
// "<module title> - <topic title>" and Theory holds rendered markup.
type Lesson struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ModuleID string `json:"module_id"`
	TopicID  string `json:"topic_id"`
	Theory   string `json:"theory"`
	Tasks    []Task `json:"tasks"`
}

// Stats summarises a loaded course.
type Stats struct {
	Modules int `json:"modules_count"`
	Lessons int `json:"lessons_count"`
}

func composeTitle(module Module, topic TopicRef) string {
	return module.Title + " - " + topic.Title
}

func cloneModule(m Module) Module {
	out := m
	out.Topics = append(make([]TopicRef, 0, len(m.Topics)), m.Topics...)
	return out
}

func cloneTasks(tasks []Task) []Task {
	return append(make([]Task, 0, len(tasks)), tasks...)
}

func cloneLesson(l Lesson) Lesson {
	out := l
	out.Tasks = cloneTasks(l.Tasks)
	return out
}
