package configs

import (
	"errors"
	"fmt"
	"strings"

	"movie-analytics/internal/shared/validators"

	"github.com/spf13/viper"
)

const (
	envPrefix = "MOVIE_ANALYTICS"

	DriverFile      = "file"
	DriverCassandra = "cassandra"
	DriverPostgres  = "postgres"
)

// LoadConfig reads configuration from file, applies MOVIE_ANALYTICS_* environment overrides and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")
	setDefaults(v)

	// MOVIE_ANALYTICS_BACKEND_CASSANDRA_HOSTS overrides backend.cassandra.hosts
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// CASSANDRA_IP is the contact point variable of existing deployments, the prefixed name wins
	if err := v.BindEnv("backend.cassandra.hosts", envPrefix+"_BACKEND_CASSANDRA_HOSTS", "CASSANDRA_IP"); err != nil {
		return nil, fmt.Errorf("failed to bind cassandra hosts env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		var ve validators.ValidationErrors
		if errors.As(err, &ve) {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	if problems := validateBackend(&cfg.Backend); len(problems) > 0 {
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(problems, ", "))
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("server.idle_timeout", 60)

	v.SetDefault("log.level", "info")

	v.SetDefault("query.timeout", 10)
	v.SetDefault("query.max_in_flight", 0)
	v.SetDefault("query.stream_buffer", 256)

	v.SetDefault("backend.driver", DriverFile)
	v.SetDefault("backend.file.root_dir", "./data")

	v.SetDefault("backend.cassandra.hosts", []string{"127.0.0.1"})
	v.SetDefault("backend.cassandra.port", 9042)
	v.SetDefault("backend.cassandra.keyspace", "analytics")
	v.SetDefault("backend.cassandra.table", "events_by_hour")
	v.SetDefault("backend.cassandra.consistency", "LOCAL_QUORUM")
	v.SetDefault("backend.cassandra.timeout_ms", 2000)
	v.SetDefault("backend.cassandra.connect_timeout_ms", 5000)
	v.SetDefault("backend.cassandra.create_schema", false)

	v.SetDefault("backend.postgres.dsn", "")
	v.SetDefault("backend.postgres.table", "events_by_hour")
	v.SetDefault("backend.postgres.max_conns", 10)
	v.SetDefault("backend.postgres.migrate", false)

	v.SetDefault("backend.breaker.enabled", true)
	v.SetDefault("backend.breaker.failure_threshold", 5)
	v.SetDefault("backend.breaker.max_requests", 16)
	v.SetDefault("backend.breaker.interval", 60)
	v.SetDefault("backend.breaker.open_timeout", 30)

	v.SetDefault("ingestion.enabled", true)

	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests", 100)
	v.SetDefault("rate_limit.window", 1)
}

// validateBackend checks the settings the selected driver depends on.
func validateBackend(backend *BackendConfig) []string {
	var problems []string
	switch backend.Driver {
	case DriverFile:
		if strings.TrimSpace(backend.File.RootDir) == "" {
			problems = append(problems, "backend.file.root_dir (required)")
		}
	case DriverCassandra:
		if len(backend.Cassandra.Hosts) == 0 {
			problems = append(problems, "backend.cassandra.hosts (required)")
		}
		if backend.Cassandra.Keyspace == "" {
			problems = append(problems, "backend.cassandra.keyspace (required)")
		}
		if backend.Cassandra.Table == "" {
			problems = append(problems, "backend.cassandra.table (required)")
		}
	case DriverPostgres:
		if backend.Postgres.DSN == "" {
			problems = append(problems, "backend.postgres.dsn (required)")
		}
		if backend.Postgres.Table == "" {
			problems = append(problems, "backend.postgres.table (required)")
		}
	}
	if backend.Breaker.Enabled && backend.Breaker.FailureThreshold == 0 {
		problems = append(problems, "backend.breaker.failure_threshold (min=1)")
	}
	return problems
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()

	// "Config.Backend.Driver" -> "backend.driver"
	if parts := strings.Split(e.StructNamespace(), "."); len(parts) >= 2 {
		field = strings.ToLower(strings.Join(parts[1:], "."))
	}

	switch tag := e.Tag(); tag {
	case "required":
		return fmt.Sprintf("%s (required)", field)
	case "min", "max", "oneof":
		return fmt.Sprintf("%s (%s=%s)", field, tag, e.Param())
	default:
		return fmt.Sprintf("%s (%s)", field, tag)
	}
}
