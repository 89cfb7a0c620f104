package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mrsinham/sakuramed/cmd/sakuramed/wizard/types"
	"github.com/mrsinham/sakuramed/internal/auth"
	"github.com/mrsinham/sakuramed/internal/exam"
	"github.com/mrsinham/sakuramed/internal/navigator"
)

// envPrefix prefixes every environment override.
const envPrefix = "SAKURAMED_"

// DefaultToastDuration is how long a notification stays on screen.
const DefaultToastDuration = 3 * time.Second

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() types.Config {
	return types.Config{
		Auth: types.AuthConfig{Delay: auth.DefaultDelay},
		Exam: types.ExamConfig{
			Positioning: navigator.PositioningModal.String(),
			Examiner:    exam.DefaultExaminer,
		},
		Log: types.LogConfig{Level: "info", Format: "json"},
		UI: types.UIConfig{
			StartRoute:    navigator.RouteLogin.Path(),
			ToastDuration: DefaultToastDuration,
		},
	}
}

// LoadFromYAML reads a configuration file. Missing keys keep their defaults.
func LoadFromYAML(path string) (types.Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing YAML: %w", err)
	}
	return cfg, nil
}

// SaveToYAML writes cfg to path.
func SaveToYAML(cfg types.Config, path string) error {
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides cfg with the SAKURAMED_* variables that are set.
func ApplyEnv(cfg *types.Config) error {
	if v := getEnv("AUTH_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sAUTH_DELAY: %w", envPrefix, err)
		}
		cfg.Auth.Delay = d
	}
	if v := getEnv("POSITIONING"); v != "" {
		cfg.Exam.Positioning = v
	}
	if v := getEnv("EXAMINER"); v != "" {
		cfg.Exam.Examiner = v
	}
	if v := getEnv("LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := getEnv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := getEnv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := getEnv("START_ROUTE"); v != "" {
		cfg.UI.StartRoute = v
	}
	return nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + key))
}

// Validate checks the configuration values.
func Validate(cfg types.Config) error {
	if cfg.Auth.Delay < 0 {
		return fmt.Errorf("auth.delay must not be negative, got %s", cfg.Auth.Delay)
	}
	if _, err := navigator.ParsePositioningVariant(cfg.Exam.Positioning); err != nil {
		return fmt.Errorf("exam.positioning: %w", err)
	}
	switch cfg.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level: %s (valid: debug, info, warn, error)", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid log.format: %s (valid: json, console)", cfg.Log.Format)
	}
	if cfg.UI.StartRoute != "" && navigator.Resolve(cfg.UI.StartRoute) == navigator.RouteNotFound {
		return fmt.Errorf("ui.start_route: unknown route %s", cfg.UI.StartRoute)
	}
	if cfg.UI.ToastDuration < 0 {
		return fmt.Errorf("ui.toast_duration must not be negative, got %s", cfg.UI.ToastDuration)
	}
	return nil
}
