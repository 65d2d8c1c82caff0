package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"
)

// HolidayRule defines a recurring company holiday. Dates matching the rrule
// are synced into every active worker's calendar as approved full-day
// exceptions.
type HolidayRule struct {
	RRule string `yaml:"rrule" validate:"required"`
	Title string `yaml:"title" validate:"required"`
}

// Scoring adjusts how assignment suggestions are scored and composed. Zero
// values fall back to the engine defaults.
type Scoring struct {
	AvailabilityFitWeight float64 `yaml:"availabilityFitWeight" validate:"gte=0"`
	RatingWeight          float64 `yaml:"ratingWeight" validate:"gte=0"`
	ProficiencyWeight     float64 `yaml:"proficiencyWeight" validate:"gte=0"`
	ComfortSlackMinutes   int     `yaml:"comfortSlackMinutes" validate:"gte=0"`
	MaxAlternates         int     `yaml:"maxAlternates" validate:"gte=-1"`
}

// Notifications configures outbound mail
type Notifications struct {
	Sender string `yaml:"sender" validate:"required,email"`
}

// Config represents the application configuration
type Config struct {
	Notifications Notifications `yaml:"notifications" validate:"required"`
	Scoring       Scoring       `yaml:"scoring,omitempty"`
	HolidayRules  []HolidayRule `yaml:"holidayRules,omitempty" validate:"dive"`
}

// Env holds the CLI's endpoint configuration, read from the environment so
// credentials never live in the config file. RabbitMQDSN is optional;
// decision notifications are skipped when it is unset.
type Env struct {
	DatabaseDSN string `env:"DATABASE_DSN,required"`
	RabbitMQDSN string `env:"RABBITMQ_DSN"`
}

// MailEnv holds the mail worker's broker and SMTP configuration. The worker
// has no flags; Environment selects the config file the same way the CLI's
// --env flag does.
type MailEnv struct {
	Environment string `env:"ENVIRONMENT" envDefault:"prod"`
	RabbitMQDSN string `env:"RABBITMQ_DSN,required"`
	SMTP        struct {
		Host     string `env:"HOST,required"`
		Port     int    `env:"PORT" envDefault:"587"`
		Username string `env:"USERNAME,required"`
		Password string `env:"PASSWORD,required"`
	} `envPrefix:"SMTP_"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// LoadWithEnv loads and validates the configuration for the given
// environment, e.g. crewdeck.production.yaml. It looks for the config file
// in the current directory first, then in the user's home directory.
func LoadWithEnv(environment string) (*Config, error) {
	configPath, err := findConfigFile(fmt.Sprintf("crewdeck.%s.yaml", environment))
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.HolidayRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in holidayRules[%d]: %w", i, err)
		}
	}

	return nil
}

// LoadEnv parses the CLI environment configuration
func LoadEnv() (*Env, error) {
	e := &Env{}
	if err := env.Parse(e); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", firstEnvError(err))
	}
	return e, nil
}

// LoadMailEnv parses the mail worker environment configuration
func LoadMailEnv() (*MailEnv, error) {
	e := &MailEnv{}
	if err := env.Parse(e); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", firstEnvError(err))
	}
	return e, nil
}

// firstEnvError unwraps an env aggregate down to its first error so the
// message names one missing variable instead of dumping the whole list
func firstEnvError(err error) error {
	var aggErr env.AggregateError
	if errors.As(err, &aggErr) && len(aggErr.Errors) > 0 {
		return aggErr.Errors[0]
	}
	return err
}

// findConfigFile searches for the named config file in the current directory
// and the user's home directory
func findConfigFile(configFileName string) (string, error) {
	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("%s not found in current directory or home directory", configFileName)
}
