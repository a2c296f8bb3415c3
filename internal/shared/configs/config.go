package configs

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Query     QueryConfig     `mapstructure:"query" validate:"required"`
	Backend   BackendConfig   `mapstructure:"backend" validate:"required"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// QueryConfig bounds the bucket fan-out of one movie information request.
type QueryConfig struct {
	Timeout      int `mapstructure:"timeout" validate:"required,min=1"` // seconds
	MaxInFlight  int `mapstructure:"max_in_flight" validate:"min=0"`    // 0 is unbounded
	StreamBuffer int `mapstructure:"stream_buffer" validate:"min=0"`
}

// BackendConfig selects and configures the event store.
type BackendConfig struct {
	Driver    string          `mapstructure:"driver" validate:"required,oneof=file cassandra postgres"`
	File      FileConfig      `mapstructure:"file"`
	Cassandra CassandraConfig `mapstructure:"cassandra"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
}

type FileConfig struct {
	RootDir string `mapstructure:"root_dir"`
}

type CassandraConfig struct {
	Hosts            []string `mapstructure:"hosts"`
	Port             int      `mapstructure:"port" validate:"min=0,max=65535"`
	Keyspace         string   `mapstructure:"keyspace"`
	Table            string   `mapstructure:"table"`
	Consistency      string   `mapstructure:"consistency"`
	TimeoutMs        int      `mapstructure:"timeout_ms" validate:"min=0"`
	ConnectTimeoutMs int      `mapstructure:"connect_timeout_ms" validate:"min=0"`
	CreateSchema     bool     `mapstructure:"create_schema"`
}

type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	Table    string `mapstructure:"table"`
	MaxConns int32  `mapstructure:"max_conns" validate:"min=0"`
	Migrate  bool   `mapstructure:"migrate"`
}

// BreakerConfig configures the circuit breaker wrapped around the event store.
type BreakerConfig struct {
	Enabled          bool   `mapstructure:"enabled"`
	FailureThreshold uint32 `mapstructure:"failure_threshold"`
	MaxRequests      uint32 `mapstructure:"max_requests"`
	Interval         int    `mapstructure:"interval" validate:"min=0"`     // seconds, 0 never clears
	OpenTimeout      int    `mapstructure:"open_timeout" validate:"min=0"` // seconds
}

type IngestionConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RateLimitConfig limits requests per client IP on the /v1 routes.
type RateLimitConfig struct {
	Enabled  bool `mapstructure:"enabled"`
	Requests int  `mapstructure:"requests" validate:"min=0"`
	Window   int  `mapstructure:"window" validate:"min=0"` // seconds
}
