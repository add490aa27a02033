package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	Env        string `env:"APP_ENV"     envDefault:"dev"`
	WebPort    string `env:"WEB_PORT"    envDefault:"8080"`
	HealthPort string `env:"HEALTH_PORT" envDefault:"50051"`

	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"12h"`
	SecureCookies bool          `env:"SECURE_COOKIES" envDefault:"false"`

	LedgerBackend string `env:"LEDGER_BACKEND" envDefault:"file"`
	LedgerKey     string `env:"LEDGER_KEY"     envDefault:"meetings"`
	DataDir       string `env:"DATA_DIR"       envDefault:"data"`
	DatabaseURL   string `env:"DATABASE_URL"`

	UploadDir   string `env:"UPLOAD_DIR"    envDefault:"data/uploads"`
	MaxUploadMB int64  `env:"MAX_UPLOAD_MB" envDefault:"512"`

	AuthRateRPS      float64 `env:"AUTH_RATE_RPS"       envDefault:"5"`
	AuthRateBurst    int     `env:"AUTH_RATE_BURST"     envDefault:"10"`
	GlobalRatePerMin int     `env:"GLOBAL_RATE_PER_MIN" envDefault:"300"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.LedgerBackend {
	case BackendMemory, BackendFile, BackendSQLite:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres ledger backend")
		}
	default:
		return fmt.Errorf("unknown LEDGER_BACKEND %q", c.LedgerBackend)
	}
	if c.LedgerKey == "" {
		return errors.New("LEDGER_KEY must not be empty")
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

func (c Config) MaxUploadBytes() int64 { return c.MaxUploadMB << 20 }
