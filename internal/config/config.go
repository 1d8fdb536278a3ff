package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string           `yaml:"env"`         // Env is the current environment: local, development, production.
	Postgres   PostgresConfig   `yaml:"postgres"`    // Postgres holds the database configuration
	HTTPServer HTTPServerConfig `yaml:"http_server"` // HTTPServer holds the employee API server configuration
	Monitoring MonitoringConfig `yaml:"monitoring"`  // Monitoring holds the health and metrics server configuration
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`      // Host is the database server address.
	Port     string `yaml:"port"`      // Port is the database server port.
	User     string `yaml:"user"`      // User is the database user.
	Password string `yaml:"password"`  // Password is the database user's password.
	Dbname   string `yaml:"db_name"`   // Dbname is the name of the database.
	MaxConns int32  `yaml:"max_conns"` // MaxConns caps the size of the connection pool.
	MinConns int32  `yaml:"min_conns"` // MinConns is the number of connections kept open.
}

// HTTPServerConfig struct holds the configuration of the employee REST API.
type HTTPServerConfig struct {
	Address         string        `yaml:"address"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`   // MaxBodyBytes limits request bodies, 0 disables the limit.
	RateLimitRPS    int           `yaml:"rate_limit_rps"`   // RateLimitRPS is the allowed requests per second, 0 disables limiting.
	RateLimitBurst  int           `yaml:"rate_limit_burst"` // RateLimitBurst is the token bucket size.
}

// MonitoringConfig struct holds the configuration of the /healthz and /metrics server.
type MonitoringConfig struct {
	Port int `yaml:"port"`
}

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = map[string]string{
	"env":                          "EMS_ENV",
	"postgres.host":                "DB_HOST",
	"postgres.port":                "DB_PORT",
	"postgres.user":                "DB_USERNAME",
	"postgres.password":            "DB_PASSWORD",
	"postgres.db_name":             "DB_NAME",
	"postgres.max_conns":           "DB_MAX_CONNS",
	"postgres.min_conns":           "DB_MIN_CONNS",
	"http_server.address":          "HTTP_ADDRESS",
	"http_server.read_timeout":     "HTTP_READ_TIMEOUT",
	"http_server.write_timeout":    "HTTP_WRITE_TIMEOUT",
	"http_server.idle_timeout":     "HTTP_IDLE_TIMEOUT",
	"http_server.shutdown_timeout": "HTTP_SHUTDOWN_TIMEOUT",
	"http_server.max_body_bytes":   "HTTP_MAX_BODY_BYTES",
	"http_server.rate_limit_rps":   "HTTP_RATE_LIMIT_RPS",
	"http_server.rate_limit_burst": "HTTP_RATE_LIMIT_BURST",
	"monitoring.port":              "MONITORING_PORT",
}

// MustLoad loads the configuration and panics on any error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

// Load reads the optional YAML file pointed to by CONFIG_PATH, applies environment
// overrides and defaults, and returns the resulting Config.
func Load() (*Config, error) {
	vpr := viper.New()
	setDefaults(vpr)

	for key, envName := range envBindings {
		if err := vpr.BindEnv(key, envName); err != nil {
			return nil, fmt.Errorf("failed to bind %s to %s: %w", envName, key, err)
		}
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		// check if file exists
		if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		vpr.SetConfigFile(configPath)
		vpr.SetConfigType("yaml")
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	httpCfg, err := loadHTTPServer(vpr)
	if err != nil {
		return nil, err
	}

	return &Config{
		Env: vpr.GetString("env"),
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
			MaxConns: vpr.GetInt32("postgres.max_conns"),
			MinConns: vpr.GetInt32("postgres.min_conns"),
		},
		HTTPServer: httpCfg,
		Monitoring: MonitoringConfig{
			Port: vpr.GetInt("monitoring.port"),
		},
	}, nil
}

func setDefaults(vpr *viper.Viper) {
	vpr.SetDefault("env", "local")
	vpr.SetDefault("postgres.host", "localhost")
	vpr.SetDefault("postgres.port", "5432")
	vpr.SetDefault("postgres.max_conns", 10)
	vpr.SetDefault("postgres.min_conns", 3)
	vpr.SetDefault("http_server.address", ":8080")
	vpr.SetDefault("http_server.read_timeout", "5s")
	vpr.SetDefault("http_server.write_timeout", "10s")
	vpr.SetDefault("http_server.idle_timeout", "60s")
	vpr.SetDefault("http_server.shutdown_timeout", "10s")
	vpr.SetDefault("http_server.max_body_bytes", 1<<20)
	vpr.SetDefault("http_server.rate_limit_rps", 0)
	vpr.SetDefault("http_server.rate_limit_burst", 50)
	vpr.SetDefault("monitoring.port", 9090)
}

func loadHTTPServer(vpr *viper.Viper) (HTTPServerConfig, error) {
	cfg := HTTPServerConfig{
		Address:        vpr.GetString("http_server.address"),
		MaxBodyBytes:   vpr.GetInt64("http_server.max_body_bytes"),
		RateLimitRPS:   vpr.GetInt("http_server.rate_limit_rps"),
		RateLimitBurst: vpr.GetInt("http_server.rate_limit_burst"),
	}

	timeouts := []struct {
		key    string
		target *time.Duration
	}{
		{"http_server.read_timeout", &cfg.ReadTimeout},
		{"http_server.write_timeout", &cfg.WriteTimeout},
		{"http_server.idle_timeout", &cfg.IdleTimeout},
		{"http_server.shutdown_timeout", &cfg.ShutdownTimeout},
	}
	for _, timeout := range timeouts {
		parsed, err := time.ParseDuration(vpr.GetString(timeout.key))
		if err != nil {
			return HTTPServerConfig{}, fmt.Errorf("failed to parse %s: %w", timeout.key, err)
		}
		*timeout.target = parsed
	}

	return cfg, nil
}
