package http

import "net/http"

type healthResponse struct {
	Status       string `json:"status"`
	ModulesCount int    `json:"modules_count"`
	LessonsCount int    `json:"lessons_count"`
}

func (api *CourseAPI) registerHealthRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("GET "+joinPath(base, "health"), api.handleHealth)
}

func (api *CourseAPI) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !api.courseReady(w) {
		return
	}
	stats := api.course.Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:       "ok",
		ModulesCount: stats.Modules,
		LessonsCount: stats.Lessons,
	})
}
