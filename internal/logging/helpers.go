package logging

import (
	"maps"

	"github.com/goliatone/go-course/pkg/interfaces"
)

// WithFields attaches structured fields to a logger when the implementation
// supports the optional FieldsLogger extension. A nil logger yields NoOp.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return NoOp()
	}
	if len(fields) == 0 {
		return logger
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		copied := make(map[string]any, len(fields))
		maps.Copy(copied, fields)
		return fieldsLogger.WithFields(copied)
	}

	return logger
}

// WithError tags the logger with an error field.
func WithError(logger interfaces.Logger, err error) interfaces.Logger {
	if err == nil {
		return WithFields(logger, nil)
	}
	return WithFields(logger, map[string]any{"error": err.Error()})
}
