package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fjglira/tutorialcheck/internal/domain"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Shell.Path == "" {
		return domain.NewError("config", "", 0, "shell.path must not be empty", nil)
	}

	if _, err := ParseTimeout(cfg.Commands.Timeout); err != nil {
		return domain.NewError("config", "", 0,
			fmt.Sprintf("commands.timeout %q is not a valid duration", cfg.Commands.Timeout), err)
	}

	if _, err := logrus.ParseLevel(cfg.Logging.Level); err != nil {
		return domain.NewError("config", "", 0,
			fmt.Sprintf("logging.level %q is not a valid level", cfg.Logging.Level), err)
	}

	switch cfg.Output.Color {
	case "auto", "always", "never":
	default:
		return domain.NewError("config", "", 0,
			fmt.Sprintf("output.color must be auto, always or never, got %q", cfg.Output.Color), nil)
	}

	return nil
}

// ParseTimeout parses the commands.timeout value. "0" and "" disable the
// timeout.
func ParseTimeout(s string) (time.Duration, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative")
	}
	return d, nil
}
