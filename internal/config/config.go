// Package config defines service configuration and its loader.
//
// Values are layered: defaults from New, then an optional YAML file, then
// DUELBOARD_* environment variables. A .env file in the working directory
// is read into the environment first.
package config

import "time"

// Environment names with special handling.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Env names the deployment environment. development adds loopback CORS origins.
	Env string `koanf:"env"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// StoreDriver picks the record store: memory, postgres, sqlite or redis.
	StoreDriver string `koanf:"store_driver"`

	// DatabaseURL is the DSN for the postgres and sqlite drivers.
	DatabaseURL string `koanf:"database_url"`

	// Redis connection for the redis driver.
	RedisAddr      string `koanf:"redis_addr"`
	RedisPassword  string `koanf:"redis_password"`
	RedisDB        int    `koanf:"redis_db"`
	RedisKeyPrefix string `koanf:"redis_key_prefix"`

	// CORSOrigins lists browser origins allowed to call the API.
	CORSOrigins []string `koanf:"cors_origins"`

	// DefaultLeaderboardLimit applies when a query omits limit.
	DefaultLeaderboardLimit int `koanf:"default_leaderboard_limit"`

	// MaxLeaderboardLimit caps GET /api/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New returns a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		LogFormat:   "text",
		Env:         EnvDevelopment,
		Addr:        ":8000",
		StoreDriver: "memory",
		RedisAddr:   "localhost:6379",
		CORSOrigins: []string{
			"https://tetris-game.ai-tracks.com",
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8098",
		},
		RedisKeyPrefix:          "duelboard:",
		DefaultLeaderboardLimit: 10,
		MaxLeaderboardLimit:     100,
		ShutdownTimeout:         30 * time.Second,
	}
}

// AllowedOrigins returns the CORS origins, adding loopback variants of the
// local dev servers in development.
func (c *Config) AllowedOrigins() []string {
	origins := append([]string(nil), c.CORSOrigins...)
	if c.Env == EnvDevelopment {
		origins = append(origins,
			"http://127.0.0.1:3000",
			"http://127.0.0.1:5173",
			"http://127.0.0.1:8098",
		)
	}
	return origins
}
