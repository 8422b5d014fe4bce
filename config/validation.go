package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that the settings the server cannot run without are
// present. Redis and S3 are optional integrations and validated at their
// client constructors instead.
func ValidateConfig(cfg *Config) error {
	var missing []string

	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET (or jwt_secret secret)")
	}
	if cfg.DBUser == "" {
		missing = append(missing, "DB_USER (or db_user secret)")
	}
	if cfg.DBPassword == "" {
		missing = append(missing, "DB_PASSWORD (or db_password secret)")
	}
	if cfg.DBName == "" {
		missing = append(missing, "DB_NAME")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
