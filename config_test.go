package course_test

import (
	"errors"
	"testing"

	course "github.com/goliatone/go-course"
)

func TestConfigValidateGoldmarkRequiresFeature(t *testing.T) {
	cfg := course.DefaultConfig()
	cfg.Markup.Engine = "goldmark"
	if err := cfg.Validate(); !errors.Is(err, course.ErrGoldmarkFeatureRequired) {
		t.Fatalf("expected ErrGoldmarkFeatureRequired, got %v", err)
	}
}

func TestConfigValidateLoggingProviderUnknown(t *testing.T) {
	cfg := course.DefaultConfig()
	cfg.Logging.Provider = "invalid"
	if err := cfg.Validate(); !errors.Is(err, course.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestDefaultConfigServesConventionalLayout(t *testing.T) {
	cfg := course.DefaultConfig()
	if cfg.Course.ManifestPath != "data/modules/manifest.json" {
		t.Fatalf("unexpected manifest path %q", cfg.Course.ManifestPath)
	}
	if cfg.HTTP.Addr != ":8000" || cfg.HTTP.BasePath != "/api" {
		t.Fatalf("unexpected http defaults %+v", cfg.HTTP)
	}
}

func TestApplyEnvOverlaysVariables(t *testing.T) {
	t.Setenv("COURSE_CHECKER_AUTHORED_EXPECTED", "true")

	cfg := course.DefaultConfig()
	if err := course.ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if !cfg.Checker.AuthoredExpected {
		t.Fatalf("expected authored expected enabled")
	}
}
