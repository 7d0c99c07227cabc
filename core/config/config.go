package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Port        int    `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Origin used when building invite links and redirects.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"https://chordfund.app"`

	WorkOS WorkOSConfig `envPrefix:"WORKOS_"`
	Mail   MailConfig   `envPrefix:"MAIL_"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

type WorkOSConfig struct {
	APIKey      string `env:"API_KEY,required"`
	ClientID    string `env:"CLIENT_ID,required"`
	RedirectURI string `env:"REDIRECT_URI,required"`
}

type MailConfig struct {
	Endpoint string `env:"ENDPOINT" envDefault:"https://api.resend.com/emails"`
	APIKey   string `env:"API_KEY,required"`
	From     string `env:"FROM" envDefault:"Chordfund <invites@chordfund.app>"`
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

// Load reads .env when present, then parses configuration from the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
