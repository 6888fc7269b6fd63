package database

import (
	"fmt"
	"strings"
)

// UsageCollection stores one document per generate/image call.
const UsageCollection = "generative-usages"

// DatabaseConfig holds MongoDB connection configuration
type DatabaseConfig struct {
	// MongoDB connection URI (includes all connection details including auth)
	URI string
	// The current environment (local, development, production, or test)
	Environment string
	// Database name based on environment and service name
	DatabaseName string
	// Application name for MongoDB connection
	AppName string
}

// NewDatabaseConfig derives the database name "{env-prefix}-{service}" from
// the service name and environment.
func NewDatabaseConfig(uri, serviceName, environment string) *DatabaseConfig {
	environment = strings.ToLower(environment)
	if serviceName == "" {
		serviceName = "hulukipedia-gateway"
	}

	var envPrefix string
	switch environment {
	case "production", "prod":
		envPrefix = "prod"
		environment = "production"
	case "local":
		envPrefix = "loc"
	case "test":
		envPrefix = "test"
	default:
		envPrefix = "dev"
		environment = "development"
	}

	dbServiceName := strings.ReplaceAll(serviceName, "_", "-")

	return &DatabaseConfig{
		URI:          uri,
		Environment:  environment,
		DatabaseName: fmt.Sprintf("%s-%s", envPrefix, dbServiceName),
		AppName:      serviceName,
	}
}

// Enabled reports whether a MongoDB URI was configured.
func (c *DatabaseConfig) Enabled() bool {
	return c != nil && c.URI != ""
}

// MaskSensitiveData returns a copy of the config with sensitive data masked for logging
func (c *DatabaseConfig) MaskSensitiveData() *DatabaseConfig {
	masked := *c
	if strings.Contains(masked.URI, "@") {
		parts := strings.Split(masked.URI, "@")
		credsPart := strings.Split(parts[0], "//")
		if len(credsPart) >= 2 {
			masked.URI = credsPart[0] + "//***:***@" + strings.Join(parts[1:], "@")
		}
	}
	return &masked
}
