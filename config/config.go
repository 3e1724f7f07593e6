package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		App       App
		CORS      CORS
		HTTP      HTTP
		Log       Log
		EuPago    EuPago
		Sandbox   Sandbox
		PayByLink PayByLink
	}

	App struct {
		Name     string `env:"APP_NAME" envDefault:"eupago"`
		Version  string `env:"APP_VERSION" envDefault:"dev"`
		Timezone string `env:"APP_TIMEZONE" envDefault:"Europe/Lisbon"`
	}

	CORS struct {
		AllowCredentials bool   `env:"APP_CORS_ALLOW_CREDENTIALS"`
		AllowedHeaders   string `env:"APP_CORS_ALLOWED_HEADERS"`
		AllowedMethods   string `env:"APP_CORS_ALLOWED_METHODS"`
		AllowedOrigins   string `env:"APP_CORS_ALLOWED_ORIGINS"`
		Enable           bool   `env:"APP_CORS_ENABLE"`
		MaxAgeSeconds    int    `env:"APP_CORS_MAX_AGE_SECONDS"`
	}

	HTTP struct {
		Port string `env:"HTTP_PORT" envDefault:"8080"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL" envDefault:"info"`
	}

	EuPago struct {
		APIKey  string        `env:"EUPAGO_API_KEY"`
		Sandbox bool          `env:"EUPAGO_SANDBOX" envDefault:"true"`
		Timeout time.Duration `env:"EUPAGO_TIMEOUT" envDefault:"5s"`
		BaseURL string        `env:"EUPAGO_BASE_URL"`
		Mock    bool          `env:"EUPAGO_MOCK" envDefault:"false"`
	}

	Sandbox struct {
		APIKeys            []string `env:"SANDBOX_API_KEY" envSeparator:","`
		ExpirationSchedule string   `env:"SANDBOX_EXPIRATION_SCHEDULE" envDefault:"0 * * * * *"`
		RedirectBaseURL    string   `env:"SANDBOX_REDIRECT_BASE_URL" envDefault:"https://sandbox.eupago.pt/paybylink"`
	}

	PayByLink struct {
		Value          float64       `env:"PAYBYLINK_VALUE" envDefault:"10"`
		Currency       string        `env:"PAYBYLINK_CURRENCY" envDefault:"EUR"`
		Lang           string        `env:"PAYBYLINK_LANG" envDefault:"PT"`
		ExpiresIn      time.Duration `env:"PAYBYLINK_EXPIRES_IN" envDefault:"24h"`
		SuccessURL     string        `env:"PAYBYLINK_SUCCESS_URL"`
		FailURL        string        `env:"PAYBYLINK_FAIL_URL"`
		BackURL        string        `env:"PAYBYLINK_BACK_URL"`
		CustomerName   string        `env:"PAYBYLINK_CUSTOMER_NAME"`
		CustomerEmail  string        `env:"PAYBYLINK_CUSTOMER_EMAIL"`
		CustomerNotify bool          `env:"PAYBYLINK_CUSTOMER_NOTIFY"`
		ProductName    string        `env:"PAYBYLINK_PRODUCT_NAME"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config failed: %w", err)
	}

	return cfg, nil
}
