package config

import (
	"time"

	env "github.com/caarlos0/env/v11"
)

// Config is everything the server reads from the environment. Load it after
// godotenv so a .env file can supply the values in development.
type Config struct {
	Addr          string        `env:"APP_ADDR" envDefault:":8080"`
	DatabaseDSN   string        `env:"DB_DSN"`
	SessionSecret string        `env:"SESSION_SECRET" envDefault:"dev_fallback_secret"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	TemplateGlob  string        `env:"TEMPLATE_GLOB" envDefault:"internal/views/*.tmpl"`
	UploadDir     string        `env:"UPLOAD_DIR" envDefault:"uploads"`
	BaseURL       string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"30m"`

	// Seed credentials for the first admin account; both empty means no seed.
	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
