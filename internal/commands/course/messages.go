package coursecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const validateCourseMessageType = "course.validate"

// ValidateCourseCommand loads a manifest and every topic it references and
// fails when anything would be skipped or collide at serve time.
type ValidateCourseCommand struct {
	// ManifestPath locates the manifest relative to the handler filesystem.
	ManifestPath string `json:"manifest_path"`
	// Strict treats malformed topics as fatal instead of collecting them.
	Strict bool `json:"strict,omitempty"`
	// AllowMissing accepts topics whose documents are absent.
	AllowMissing bool `json:"allow_missing,omitempty"`
}

// Type implements command.Message.
func (ValidateCourseCommand) Type() string { return validateCourseMessageType }

// Validate ensures a manifest path is present before handlers execute.
func (cmd ValidateCourseCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ManifestPath, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("course.validate.manifest_path_required", "manifest path is required")
			}
			return nil
		})),
	)
}
