// Package config loads the server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration.
type Config struct {
	Port           string `env:"PORT"                     envDefault:"8080"`
	GinMode        string `env:"GIN_MODE"                 envDefault:"debug"`
	LogLevel       string `env:"LOG_LEVEL"                envDefault:"info"`
	DefaultLocale  string `env:"DEFAULT_LOCALE"           envDefault:"vi"`
	APIBaseURL     string `env:"API_BASE_URL"             envDefault:"http://localhost:8000"`
	PersonalizeURL string `env:"PERSONALIZATION_BASE_URL"`
	DatabasePath   string `env:"DATABASE_PATH"            envDefault:"portfolio.db"`
	SecureCookies  bool   `env:"SECURE_COOKIES"           envDefault:"false"`

	SMTP SMTP
}

// SMTP configures the contact form mailer. An empty User disables sending.
type SMTP struct {
	Host string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port string `env:"SMTP_PORT" envDefault:"587"`
	User string `env:"SMTP_USER"`
	Pass string `env:"SMTP_PASS"`
	To   string `env:"TO_EMAIL"`
}

// Enabled reports whether credentials are configured.
func (s SMTP) Enabled() bool {
	return s.User != "" && s.Pass != ""
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	if cfg.PersonalizeURL == "" {
		cfg.PersonalizeURL = cfg.APIBaseURL + "/api"
	}
	cfg.PersonalizeURL = strings.TrimRight(cfg.PersonalizeURL, "/")
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the fields Load cannot default.
func (c Config) Validate() error {
	var errs []error
	if err := checkURL("API_BASE_URL", c.APIBaseURL); err != nil {
		errs = append(errs, err)
	}
	if err := checkURL("PERSONALIZATION_BASE_URL", c.PersonalizeURL); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.DefaultLocale) == "" {
		errs = append(errs, errors.New("DEFAULT_LOCALE is empty"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is empty"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func checkURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: scheme must be http or https, got %q", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: missing host in %q", name, raw)
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}
