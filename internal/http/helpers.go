package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-course/internal/course"
	"github.com/goliatone/go-course/internal/validation"
)

type errorResponse struct {
	Error    string                       `json:"error"`
	Message  string                       `json:"message,omitempty"`
	TextCode string                       `json:"text_code,omitempty"`
	Issues   []validation.ValidationIssue `json:"issues,omitempty"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" || trimmedBase == "/" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func decodeJSON(r *http.Request, target any) error {
	if r == nil || r.Body == nil {
		return io.EOF
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(target); err != nil {
		return err
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	if err == nil {
		return http.StatusInternalServerError, errorResponse{Error: "unknown_error"}
	}

	var notFound *course.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, errorResponse{
			Error:    "not_found",
			Message:  notFound.Error(),
			TextCode: textCode(err),
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryValidation) {
		return http.StatusUnprocessableEntity, errorResponse{
			Error:    "validation_failed",
			Message:  validationMessage(err),
			TextCode: textCode(err),
			Issues:   fieldIssues(err),
		}
	}

	if goerrors.IsCategory(err, goerrors.CategoryBadInput) {
		return http.StatusBadRequest, errorResponse{
			Error:    "bad_request",
			Message:  validationMessage(err),
			TextCode: textCode(err),
		}
	}

	return http.StatusInternalServerError, errorResponse{
		Error:   "internal_error",
		Message: err.Error(),
	}
}

func textCode(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr.TextCode
	}
	return ""
}

func validationMessage(err error) string {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) && richErr.Message != "" {
		return richErr.Message
	}
	return err.Error()
}

// fieldIssues flattens go-errors field errors into JSON pointer issues,
// sorted by location so responses are stable.
func fieldIssues(err error) []validation.ValidationIssue {
	fieldErrs, ok := goerrors.GetValidationErrors(err)
	if !ok {
		return nil
	}
	issues := make([]validation.ValidationIssue, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		issues = append(issues, validation.ValidationIssue{
			Location: "/" + strings.ReplaceAll(fieldErr.Field, ".", "/"),
			Message:  fieldErr.Message,
		})
	}
	sort.Slice(issues, func(i, j int) bool { return issues[i].Location < issues[j].Location })
	return issues
}
