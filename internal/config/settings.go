package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"

	"github.com/hulukipedia/gateway/internal/logger"
)

// DefaultConfigPath is used when HULUKIPEDIA_LITELLM_CONFIG is unset.
const DefaultConfigPath = "litellm_config.yaml"

// Settings holds all environment backed process configuration.
type Settings struct {
	// HTTP server
	Host            string        `env:"HOST" envDefault:"0.0.0.0" validate:"required"`
	Port            int           `env:"PORT" envDefault:"8000" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"30s" validate:"gt=0"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"660s" validate:"gt=0"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s" validate:"gt=0"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s" validate:"gt=0"`

	// Routing document
	ConfigPath string `env:"HULUKIPEDIA_LITELLM_CONFIG" envDefault:"litellm_config.yaml" validate:"required"`

	// Observability
	ServiceName string `env:"SERVICE_NAME" envDefault:"hulukipedia-gateway"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json text"`
	LogOutput   string `env:"LOG_OUTPUT" envDefault:"stdout"`

	// Features
	EnableSwagger bool   `env:"ENABLE_SWAGGER" envDefault:"true"`
	MongoURI      string `env:"MONGODB_URI"`
}

var validate = validator.New()

// LoadSettings parses Settings from the environment and validates them.
func LoadSettings() (*Settings, error) {
	var settings Settings
	if err := env.Parse(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks the settings against their validation tags.
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			messages := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				messages = append(messages, formatFieldError(e))
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(messages, "; "))
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// LoggerConfig returns the logger configuration described by the settings.
func (s *Settings) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       logger.ParseLevel(s.LogLevel),
		Format:      s.LogFormat,
		Output:      s.LogOutput,
		TimeFormat:  time.RFC3339,
		ServiceName: s.ServiceName,
		Environment: s.Environment,
	}
}

// Address returns the host:port the server listens on.
func (s *Settings) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

func formatFieldError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("field '%s' is required", e.Field())
	case "min", "max":
		return fmt.Sprintf("field '%s' must satisfy %s=%s", e.Field(), e.Tag(), e.Param())
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("field '%s' failed validation: %s", e.Field(), e.Tag())
	}
}
