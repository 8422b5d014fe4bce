package config

import "os"

// Environment identifies the runtime environment the server was started in.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment reads APP_ENV, defaulting to development.
func GetEnvironment() Environment {
	switch os.Getenv("APP_ENV") {
	case "production":
		return Production
	case "ci":
		return CI
	case "test":
		return Test
	default:
		return Development
	}
}
