package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the server, read from
// CERBERO_-prefixed environment variables.  Everything the access
// pipeline needs is passed down from here explicitly; no component reads
// environment state on its own.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	Env      string `envconfig:"ENV" default:"dev"` // "dev" | "prod"

	// DBPath enables SQLite persistence for the audit and access logs
	// when non-empty.  Empty keeps everything in memory for the process
	// lifetime.
	DBPath string `envconfig:"DB_PATH" default:""`

	// Factor tuning.
	MaxRFIDAttempts  int     `envconfig:"MAX_RFID_ATTEMPTS" default:"3"`
	PatternThreshold float64 `envconfig:"PATTERN_THRESHOLD" default:"0.9"`
	PatternLength    int     `envconfig:"PATTERN_LENGTH" default:"6"`

	// Optional inter-gesture timing comparison on the pattern factor.
	PatternTimingCheck     bool    `envconfig:"PATTERN_TIMING_CHECK" default:"false"`
	PatternTimingTolerance float64 `envconfig:"PATTERN_TIMING_TOLERANCE" default:"0.8"`

	// Capture windows.
	PINTimeout     time.Duration `envconfig:"PIN_TIMEOUT" default:"60s"`
	PatternTimeout time.Duration `envconfig:"PATTERN_TIMEOUT" default:"120s"`

	// Close-gesture early abort during the authentication flow.  Off by
	// default so hand withdrawal does not cut captures short; enrollment
	// front ends always honor the close gesture, this flow must opt in.
	EnableGestureClose bool `envconfig:"ENABLE_GESTURE_CLOSE" default:"false"`
	GestureCloseCode   int  `envconfig:"GESTURE_CLOSE_CODE" default:"0"`

	// Audit/access retention for persisted deployments.  0 keeps
	// everything.
	RetentionDays      int `envconfig:"RETENTION_DAYS" default:"0"`
	PruneIntervalHours int `envconfig:"PRUNE_INTERVAL_HOURS" default:"6"`

	// SeedDemo loads a demo student/area/credential/PIN/pattern set at
	// startup for manual testing.
	SeedDemo bool `envconfig:"SEED_DEMO" default:"false"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("cerbero", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.Env != "dev" && cfg.Env != "prod" {
		// fail-soft: treat unknown as dev
		cfg.Env = "dev"
	}
	return cfg, nil
}
