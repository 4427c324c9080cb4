package config

import (
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	IsTestMode bool   `env:"TEST_MODE" envDefault:"false"`
	Secret     string `env:"SECRET,required"`
	Port       int    `env:"PORT" envDefault:"9090"`

	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
	RabbitmqURL   string `env:"RABBITMQ_URL,required"`

	RabbitmqNotificationExchange string `env:"RABBITMQ_NOTIFICATION_EXCHANGE" envDefault:""`
	RabbitmqNotificationQueue    string `env:"RABBITMQ_NOTIFICATION_QUEUE" envDefault:"notifications"`

	BcryptHasherCost           int           `env:"BCRYPT_HASHER_COST" envDefault:"10"`
	PasswordResetValidDuration time.Duration `env:"PASSWORD_RESET_VALID_DURATION" envDefault:"1h"`
	SessionValidDuration       time.Duration `env:"SESSION_VALID_DURATION" envDefault:"24h"`
	PasswordResetBaseURL       url.URL       `env:"PASSWORD_RESET_BASE_URL,required"`

	AwsRegion                       string `env:"AWS_REGION" envDefault:"us-east-1"`
	AwsAccessKey                    string `env:"AWS_ACCESS_KEY"`
	AwsSecretKey                    string `env:"AWS_SECRET_KEY"`
	AwsEmailSender                  string `env:"AWS_EMAIL_SENDER"`
	AwsEmailPasswordResetTemplate   string `env:"AWS_EMAIL_PASSWORD_RESET_TEMPLATE" envDefault:"password_reset"`
	AwsEmailPasswordChangedTemplate string `env:"AWS_EMAIL_PASSWORD_CHANGED_TEMPLATE" envDefault:"password_changed"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

func Load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, err
	}
	return config, nil
}
