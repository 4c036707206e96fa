package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if strings.TrimSpace(c.Dictionary.Path) == "" {
		return fmt.Errorf("dictionary.path is required")
	}
	if strings.TrimSpace(c.Dictionary.WorkDir) == "" {
		return fmt.Errorf("dictionary.work_dir is required")
	}

	if err := c.Analyzer.validate(); err != nil {
		return fmt.Errorf("analyzer: %w", err)
	}

	if c.Auth.Enabled() && len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if c.RateLimit.MutationsPerMinute < 0 {
		return fmt.Errorf("rate_limit.mutations_per_minute must be >= 0 (got %d)", c.RateLimit.MutationsPerMinute)
	}

	return nil
}

func (a *AnalyzerConfig) validate() error {
	switch a.Backend {
	case AnalyzerBackendKagome:
		switch a.SystemDict {
		case "ipa", "uni":
		default:
			return fmt.Errorf("system_dict must be ipa or uni (got %q)", a.SystemDict)
		}
	case AnalyzerBackendExec:
		if a.CompileCommand == "" {
			return fmt.Errorf("compile_command is required for the exec backend")
		}
	default:
		return fmt.Errorf("backend must be %s or %s (got %q)", AnalyzerBackendKagome, AnalyzerBackendExec, a.Backend)
	}
	if a.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %s)", a.Timeout)
	}
	return nil
}
