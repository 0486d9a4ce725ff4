package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

var ErrManifestPathRequired = errors.New("course config: manifest path is required")
var ErrMarkupEngineUnknown = errors.New("course config: markup engine is invalid")

// ErrGoldmarkFeatureRequired keeps the goldmark engine behind its feature flag.
var ErrGoldmarkFeatureRequired = errors.New("course config: goldmark feature must be enabled to use the goldmark engine")
var ErrHTTPAddrRequired = errors.New("course config: http address is required")
var ErrHTTPTimeoutInvalid = errors.New("course config: http timeouts must be zero or positive")
var ErrLoggingProviderRequired = errors.New("course config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("course config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("course config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("course config: logging format is invalid")

const (
	// MarkupEngineCourse selects the fixed rule pipeline used for lesson theory.
	MarkupEngineCourse = "course"
	// MarkupEngineGoldmark selects full Markdown rendering through goldmark.
	MarkupEngineGoldmark = "goldmark"
)

// Config aggregates feature flags and settings for the course module.
// Env tags allow binaries to overlay COURSE_* variables on top of defaults.
type Config struct {
	Course   CourseConfig  `envPrefix:"COURSE_"`
	Markup   MarkupConfig  `envPrefix:"COURSE_MARKUP_"`
	Checker  CheckerConfig `envPrefix:"COURSE_CHECKER_"`
	HTTP     HTTPConfig    `envPrefix:"COURSE_HTTP_"`
	Logging  LoggingConfig `envPrefix:"COURSE_LOG_"`
	Features Features      `envPrefix:"COURSE_FEATURE_"`
}

// CourseConfig controls how the manifest and topic documents are loaded.
type CourseConfig struct {
	// ManifestPath points at the module/topic manifest document.
	ManifestPath string `env:"MANIFEST_PATH"`
	// BaseDir is the filesystem root that manifest and topic paths resolve against.
	BaseDir string `env:"BASE_DIR"`
	// StrictTopics turns malformed topic documents into a fatal load error.
	StrictTopics bool `env:"STRICT_TOPICS"`
	// RejectDuplicateTasks fails the load when a task id appears in more than one place.
	RejectDuplicateTasks bool `env:"REJECT_DUPLICATE_TASKS"`
}

// MarkupConfig selects the theory renderer.
type MarkupConfig struct {
	Engine string             `env:"ENGINE"`
	Parser MarkupParserConfig `envPrefix:"PARSER_"`
}

// MarkupParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkupParserConfig struct {
	Extensions []string `env:"EXTENSIONS" envSeparator:","`
	HardWraps  bool     `env:"HARD_WRAPS"`
	SafeMode   bool     `env:"SAFE_MODE"`
}

// CheckerConfig captures answer checking behaviour.
type CheckerConfig struct {
	// AuthoredExpected returns the stored answer verbatim instead of its
	// trimmed, lower-cased comparison form.
	AuthoredExpected bool `env:"AUTHORED_EXPECTED"`
}

// HTTPConfig captures the JSON API listener settings.
type HTTPConfig struct {
	Addr            string        `env:"ADDR"`
	BasePath        string        `env:"BASE_PATH"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `env:"PROVIDER"`
	Level     string   `env:"LEVEL"`
	Format    string   `env:"FORMAT"`
	AddSource bool     `env:"ADD_SOURCE"`
	Focus     []string `env:"FOCUS" envSeparator:","`
}

// Features toggles optional functionality.
type Features struct {
	Logger   bool `env:"LOGGER"`
	Goldmark bool `env:"GOLDMARK"`
}

// DefaultConfig returns defaults for the conventional data/modules layout
// served on :8000.
func DefaultConfig() Config {
	return Config{
		Course: CourseConfig{
			ManifestPath: "data/modules/manifest.json",
			BaseDir:      ".",
		},
		Markup: MarkupConfig{
			Engine: MarkupEngineCourse,
		},
		HTTP: HTTPConfig{
			Addr:            ":8000",
			BasePath:        "/api",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Features: Features{
			Logger: true,
		},
	}
}

// ApplyEnv overlays COURSE_* environment variables on cfg. Unset variables
// leave the current values untouched.
func ApplyEnv(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("course config: parse env: %w", err)
	}
	return nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Course.ManifestPath) == "" {
		return ErrManifestPathRequired
	}
	switch NormalizeEngine(cfg.Markup.Engine) {
	case MarkupEngineCourse:
	case MarkupEngineGoldmark:
		if !cfg.Features.Goldmark {
			return ErrGoldmarkFeatureRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrMarkupEngineUnknown, cfg.Markup.Engine)
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	if cfg.HTTP.ReadTimeout < 0 || cfg.HTTP.WriteTimeout < 0 || cfg.HTTP.ShutdownTimeout < 0 {
		return ErrHTTPTimeoutInvalid
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

// NormalizeEngine lower-cases the engine name; empty selects the course engine.
func NormalizeEngine(engine string) string {
	engine = strings.ToLower(strings.TrimSpace(engine))
	if engine == "" {
		return MarkupEngineCourse
	}
	return engine
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
