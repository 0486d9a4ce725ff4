package course

import "github.com/goliatone/go-course/internal/runtimeconfig"

var (
	ErrManifestPathRequired    = runtimeconfig.ErrManifestPathRequired
	ErrMarkupEngineUnknown     = runtimeconfig.ErrMarkupEngineUnknown
	ErrGoldmarkFeatureRequired = runtimeconfig.ErrGoldmarkFeatureRequired
	ErrHTTPAddrRequired        = runtimeconfig.ErrHTTPAddrRequired
	ErrHTTPTimeoutInvalid      = runtimeconfig.ErrHTTPTimeoutInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config             = runtimeconfig.Config
	CourseConfig       = runtimeconfig.CourseConfig
	MarkupConfig       = runtimeconfig.MarkupConfig
	MarkupParserConfig = runtimeconfig.MarkupParserConfig
	CheckerConfig      = runtimeconfig.CheckerConfig
	HTTPConfig         = runtimeconfig.HTTPConfig
	LoggingConfig      = runtimeconfig.LoggingConfig
	Features           = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// ApplyEnv overlays COURSE_* environment variables on cfg.
func ApplyEnv(cfg *Config) error {
	return runtimeconfig.ApplyEnv(cfg)
}

const (
	MarkupEngineCourse   = runtimeconfig.MarkupEngineCourse
	MarkupEngineGoldmark = runtimeconfig.MarkupEngineGoldmark
)

// NormalizeEngine lower-cases the engine name; empty selects the course engine.
func NormalizeEngine(engine string) string {
	return runtimeconfig.NormalizeEngine(engine)
}
