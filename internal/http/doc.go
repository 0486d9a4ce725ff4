// Package http provides the JSON adapter for the course API.
//
// Routes mount under /api by default:
//   - Modules: /modules
//   - Lessons: /lessons, /lessons/{id}, /lessons/by-index/{index}
//   - Lesson parts: /lesson/{id}/tasks, /lesson/{id}/theory
//   - Answers: POST /check-answer
//   - Health: /health
//
// Host applications can register handlers on their own mux or use Handler,
// which adds request ids and access logging.
package http
