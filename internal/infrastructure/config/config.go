package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	AuditWorkers    int           `env:"AUDIT_WORKERS,    default=4"`

	JWT   JWTConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type JWTConfig struct {
	Secret   string        `env:"JWT_SECRET, required"`
	Issuer   string        `env:"JWT_ISSUER,   default=employee-api"`
	Audience string        `env:"JWT_AUDIENCE, default=employee-api-clients"`
	TTL      time.Duration `env:"TOKEN_TTL,    default=24h"`
}

type MongoConfig struct {
	URI                 string        `env:"MONGO_URI,                  default=mongodb://localhost:27017"`
	Database            string        `env:"MONGO_DB,                   default=EmployeeStore"`
	EmployeesCollection string        `env:"MONGO_EMPLOYEES_COLLECTION, default=Employees"`
	UsersCollection     string        `env:"MONGO_USERS_COLLECTION,     default=Users"`
	AuditCollection     string        `env:"MONGO_AUDIT_COLLECTION,     default=EmployeeAudit"`
	Timeout             time.Duration `env:"MONGO_TIMEOUT,              default=10s"`
}

// RedisConfig configures the token denylist. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment reports whether the service runs with developer defaults.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
