package http

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
)

const checkValidationCode = "CHECK_ANSWER_INVALID"

type checkAnswerPayload struct {
	TaskID string `json:"task_id"`
	Answer string `json:"answer"`
}

func (p checkAnswerPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.TaskID, validation.Required),
	)
}

func (api *CourseAPI) registerCheckRoutes(mux *http.ServeMux, base string) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST "+joinPath(base, "check-answer"), api.handleCheckAnswer)
}

func (api *CourseAPI) handleCheckAnswer(w http.ResponseWriter, r *http.Request) {
	if api == nil || api.checker == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}

	var payload checkAnswerPayload
	if err := decodeJSON(r, &payload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: "invalid JSON payload"})
		return
	}
	if err := payload.Validate(); err != nil {
		writeError(w, goerrors.FromOzzoValidation(err, "check answer payload invalid").WithTextCode(checkValidationCode))
		return
	}

	result, err := api.checker.CheckAnswer(r.Context(), payload.TaskID, payload.Answer)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
