package http

import (
	"net/http"
	"strconv"
	"strings"
)

func (api *CourseAPI) registerLessonRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET "+joinPath(base, "modules"), api.handleModuleList)

	lessons := joinPath(base, "lessons")
	mux.HandleFunc("GET "+lessons, api.handleLessonList)
	mux.HandleFunc("GET "+lessons+"/{id}", api.handleLessonGet)
	mux.HandleFunc("GET "+lessons+"/by-index/{index}", api.handleLessonByIndex)

	lesson := joinPath(base, "lesson")
	mux.HandleFunc("GET "+lesson+"/{id}/tasks", api.handleLessonTasks)
	mux.HandleFunc("GET "+lesson+"/{id}/theory", api.handleLessonTheory)
}

func (api *CourseAPI) handleModuleList(w http.ResponseWriter, r *http.Request) {
	if !api.courseReady(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"modules": api.course.Modules()})
}

func (api *CourseAPI) handleLessonList(w http.ResponseWriter, r *http.Request) {
	if !api.courseReady(w) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lessons": api.course.Lessons()})
}

func (api *CourseAPI) handleLessonGet(w http.ResponseWriter, r *http.Request) {
	if !api.courseReady(w) {
		return
	}
	lesson, err := api.course.Lesson(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (api *CourseAPI) handleLessonByIndex(w http.ResponseWriter, r *http.Request) {
	if !api.courseReady(w) {
		return
	}
	raw := strings.TrimSpace(r.PathValue("index"))
	index, err := strconv.Atoi(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "bad_request",
			Message: "lesson index must be an integer",
		})
		return
	}
	lesson, err := api.course.LessonAt(index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (api *CourseAPI) handleLessonTasks(w http.ResponseWriter, r *http.Request) {
	if !api.courseReady(w) {
		return
	}
	tasks, err := api.course.LessonTasks(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (api *CourseAPI) handleLessonTheory(w http.ResponseWriter, r *http.Request) {
	if !api.courseReady(w) {
		return
	}
	theory, err := api.course.LessonTheory(r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"theory": theory})
}

func (api *CourseAPI) courseReady(w http.ResponseWriter) bool {
	if api == nil || api.course == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return false
	}
	return true
}
