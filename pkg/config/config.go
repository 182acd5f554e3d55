// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendDynamoDB = "dynamodb"
	BackendMemory   = "memory"
)

// Config holds every setting of the TimeBank binaries.
type Config struct {
	HTTPPort     string `envconfig:"HTTP_PORT" default:"8080"`
	StoreBackend string `envconfig:"STORE_BACKEND" default:"dynamodb"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`

	MembersTable     string `envconfig:"DYNAMODB_MEMBERS_TABLE_NAME"`
	EngagementsTable string `envconfig:"DYNAMODB_ENGAGEMENTS_TABLE_NAME"`
	LedgerTable      string `envconfig:"DYNAMODB_LEDGER_TABLE_NAME"`

	// SQSQueueURL receives lifecycle events. Events are discarded when it is empty.
	SQSQueueURL string `envconfig:"SQS_QUEUE_URL"`

	MaxRetries     uint64        `envconfig:"LEDGER_MAX_RETRIES" default:"10"`
	InitialBackoff time.Duration `envconfig:"LEDGER_INITIAL_BACKOFF" default:"5ms"`
}

// Load reads the given .env files (".env" when none are named), then the
// environment. Variables already set in the environment win over the files.
// Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.StoreBackend = strings.ToLower(cfg.StoreBackend)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks that the settings are consistent. The DynamoDB table names
// are only required by the dynamodb backend.
func (c *Config) Validate() error {
	dynamo := c.StoreBackend == BackendDynamoDB
	return validation.ValidateStruct(c,
		validation.Field(&c.HTTPPort, validation.Required),
		validation.Field(&c.StoreBackend, validation.Required, validation.In(BackendDynamoDB, BackendMemory)),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.MembersTable, validation.When(dynamo, validation.Required)),
		validation.Field(&c.EngagementsTable, validation.When(dynamo, validation.Required)),
		validation.Field(&c.LedgerTable, validation.When(dynamo, validation.Required)),
		validation.Field(&c.InitialBackoff, validation.Min(time.Duration(0))),
	)
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger returns a JSON logger writing to w at the configured level.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: c.Level()}))
}
