package config

import "github.com/kelseyhightower/envconfig"

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port            int      `envconfig:"PORT" default:"8080"`
	LogLevel        string   `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL     string   `envconfig:"DATABASE_URL" default:""`
	RedisURL        string   `envconfig:"REDIS_URL" default:""`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	Version         string   `envconfig:"VERSION" default:"dev"`
	BcryptCost      int      `envconfig:"BCRYPT_COST" default:"12"`
	SessionTTLHours int      `envconfig:"SESSION_TTL_HOURS" default:"168"`
}

// Load reads configuration from environment variables into a Config struct.
// DATABASE_URL and REDIS_URL are deliberately not required: when either is
// missing the server starts degraded with the dependent routes disabled
// instead of crashing.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
