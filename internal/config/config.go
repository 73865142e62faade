package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full configuration surface, parsed once at startup and passed
// explicitly into constructors.
type Config struct {
	Port        int    `env:"PORT" envDefault:"8080"`
	AppURL      string `env:"APP_URL" envDefault:"http://localhost:8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	Auth0 Auth0Config
	JWT   JWTConfig
	Redis RedisConfig
	Minio MinioConfig
}

// Auth0Config identifies the external identity provider.
type Auth0Config struct {
	Domain   string `env:"AUTH0_DOMAIN" envDefault:"your-tenant.auth0.com"`
	Audience string `env:"AUTH0_AUDIENCE" envDefault:"https://api.reservaplus.com"`
	ClientID string `env:"AUTH0_CLIENT_ID" envDefault:"your-client-id"`
}

// JWTConfig configures the internal session-token signing domain.
type JWTConfig struct {
	Secret    string `env:"JWT_SECRET,required"`
	ExpiresIn string `env:"JWT_EXPIRES_IN" envDefault:"24h"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	UseSSL    bool   `env:"MINIO_USE_SSL" envDefault:"false"`
	Bucket    string `env:"MINIO_BUCKET" envDefault:"reservaplus-avatars"`
}

// Load reads configuration from the environment, with an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// JWKSURL is the provider key-set endpoint used for identity-token
// verification.
func (a Auth0Config) JWKSURL() string {
	return fmt.Sprintf("https://%s/.well-known/jwks.json", a.Domain)
}

// Issuer is the exact issuer value identity tokens must carry.
func (a Auth0Config) Issuer() string {
	return fmt.Sprintf("https://%s/", a.Domain)
}
