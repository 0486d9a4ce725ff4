package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-course/pkg/interfaces"
)

const (
	rootModule    = "course"
	loaderModule  = "course.loader"
	markupModule  = "course.markup"
	checkerModule = "course.checker"
	httpModule    = "course.http"
)

const (
	fieldModuleID  = "module_id"
	fieldTopicID   = "topic_id"
	fieldTopicPath = "topic_path"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per component.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// LoaderLogger returns the logger namespace reserved for course aggregation.
func LoaderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, loaderModule)
}

// MarkupLogger returns the logger namespace reserved for theory rendering.
func MarkupLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markupModule)
}

// CheckerLogger returns the logger namespace reserved for answer checking.
func CheckerLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, checkerModule)
}

// HTTPLogger returns the logger namespace reserved for the JSON API.
func HTTPLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, httpModule)
}

// WithTopicContext enriches the logger with the manifest coordinates of a
// topic. Empty values are ignored.
func WithTopicContext(logger interfaces.Logger, moduleID, topicID, path string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(moduleID); trimmed != "" {
		fields[fieldModuleID] = trimmed
	}
	if trimmed := strings.TrimSpace(topicID); trimmed != "" {
		fields[fieldTopicID] = trimmed
	}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldTopicPath] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
