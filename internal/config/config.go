package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort        int
	DataBackend     string
	OperatorWorkers int
	JWTSecret       string
	LogLevel        string
	MigrateOnStart  bool

	// AMQPURL left empty disables balance-change events.
	AMQPURL      string
	AMQPExchange string
}

// LoadDotEnv loads variables from the given files (default .env) without
// overriding ones already set. Missing files are ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the docker compose setup
	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",

		HTTPPort:        9446,
		DataBackend:     BackendPostgres,
		OperatorWorkers: 4,
		LogLevel:        "info",
		AMQPExchange:    "ledger",
	}

	setString(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setString(&env.PostgresPort, "POSTGRES_PORT")
	setString(&env.PostgresDB, "POSTGRES_DB")
	setString(&env.PostgresUsername, "POSTGRES_USERNAME")
	setString(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setString(&env.DataBackend, "DATA_BACKEND")
	setString(&env.JWTSecret, "JWT_SECRET")
	setString(&env.LogLevel, "LOG_LEVEL")
	setString(&env.AMQPURL, "AMQP_URL")
	setString(&env.AMQPExchange, "AMQP_EXCHANGE")

	if err := setInt(&env.HTTPPort, "HTTP_PORT"); err != nil {
		return nil, err
	}
	if err := setInt(&env.OperatorWorkers, "OPERATOR_WORKERS"); err != nil {
		return nil, err
	}
	if err := setBool(&env.MigrateOnStart, "MIGRATE_ON_START"); err != nil {
		return nil, err
	}

	if env.DataBackend != BackendPostgres && env.DataBackend != BackendMemory {
		return nil, fmt.Errorf("DATA_BACKEND must be %q or %q, got %q", BackendPostgres, BackendMemory, env.DataBackend)
	}
	if env.HTTPPort < 1 || env.HTTPPort > 65535 {
		return nil, fmt.Errorf("HTTP_PORT out of range: %d", env.HTTPPort)
	}
	if env.OperatorWorkers < 1 {
		return nil, fmt.Errorf("OPERATOR_WORKERS must be at least 1, got %d", env.OperatorWorkers)
	}

	return &env, nil
}

// ConnectionString builds the Postgres DSN.
func (c *Config) ConnectionString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUsername, c.PostgresPassword),
		Host:     c.PostgresAddress + ":" + c.PostgresPort,
		Path:     "/" + c.PostgresDB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); len(v) != 0 {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if len(v) == 0 {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if len(v) == 0 {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}
