package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envReferencePrefix marks a config value that should be read from the
// environment, e.g. "os.environ/OPENAI_API_KEY".
const envReferencePrefix = "os.environ/"

// LoadEnvFile loads environment variables from a .env file.
// A missing file is not an error; existing variables are not overridden.
func LoadEnvFile(envFilePath ...string) error {
	envFile := ".env"
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		envFile = envFilePath[0]
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("error loading %s file: %w", envFile, err)
	}

	return nil
}

// ResolveEnvReference expands "os.environ/NAME" to the value of NAME.
// Any other value is returned unchanged. The boolean reports whether a
// referenced variable was found (always true for literals).
func ResolveEnvReference(value string) (string, bool) {
	if !strings.HasPrefix(value, envReferencePrefix) {
		return value, true
	}
	name := strings.TrimPrefix(value, envReferencePrefix)
	resolved, ok := os.LookupEnv(name)
	return resolved, ok && resolved != ""
}
