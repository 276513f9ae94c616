package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig       `envPrefix:"APP_"`
	Server    ServerConfig    `envPrefix:"SERVER_"`
	Log       LogConfig       `envPrefix:"LOG_"`
	Database  DatabaseConfig  `envPrefix:"DATABASE_"`
	Auth      AuthConfig      `envPrefix:"AUTH_"`
	JWT       JWTConfig       `envPrefix:"JWT_"`
	Mail      MailConfig      `envPrefix:"MAIL_"`
	Captcha   CaptchaConfig   `envPrefix:"CAPTCHA_"`
	News      NewsConfig      `envPrefix:"NEWS_"`
	RateLimit RateLimitConfig `envPrefix:"RATELIMIT_"`
}

type AppConfig struct {
	Name string `env:"NAME" envDefault:"MyNews"`
	// URL is the externally reachable base address of this backend, used
	// to build verification links.
	URL string `env:"URL" envDefault:"http://localhost:8080"`
	// FrontendURL is the base address of the static frontend, used to
	// build password reset links and post-verification redirects.
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:8080"`
}

type ServerConfig struct {
	Port      string `env:"PORT" envDefault:"8080"`
	Host      string `env:"HOST" envDefault:"localhost"`
	StaticDir string `env:"STATIC_DIR" envDefault:"public"`
}

type LogConfig struct {
	Level  string `env:"LEVEL" envDefault:"info"`
	Format string `env:"FORMAT" envDefault:"json"`
	Output string `env:"OUTPUT" envDefault:"stdout"`
}

type DatabaseConfig struct {
	Driver      string `env:"DRIVER" envDefault:"sqlite"`
	DSN         string `env:"DSN" envDefault:"mynews.db"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"true"`
}

type AuthConfig struct {
	MinLength      int  `env:"MIN_LENGTH" envDefault:"8"`
	RequireUpper   bool `env:"REQUIRE_UPPER" envDefault:"false"`
	RequireLower   bool `env:"REQUIRE_LOWER" envDefault:"false"`
	RequireNumber  bool `env:"REQUIRE_NUMBER" envDefault:"false"`
	RequireSpecial bool `env:"REQUIRE_SPECIAL" envDefault:"false"`
	BcryptCost     int  `env:"BCRYPT_COST" envDefault:"10"`

	VerificationTokenLength int           `env:"VERIFICATION_TOKEN_LENGTH" envDefault:"24"`
	VerificationExpiry      time.Duration `env:"VERIFICATION_EXPIRY" envDefault:"24h"`
	ResetTokenLength        int           `env:"RESET_TOKEN_LENGTH" envDefault:"32"`
	ResetExpiry             time.Duration `env:"RESET_EXPIRY" envDefault:"1h"`

	// RequireEmailVerification gates login on a verified address. The
	// default mirrors the original deployment, which never gated login
	// on verification.
	RequireEmailVerification bool `env:"REQUIRE_EMAIL_VERIFICATION" envDefault:"false"`
}

type JWTConfig struct {
	SecretKey    string        `env:"SECRET_KEY"`
	AccessExpiry time.Duration `env:"ACCESS_EXPIRY" envDefault:"1h"`
	Issuer       string        `env:"ISSUER" envDefault:"mynews"`
}

type MailConfig struct {
	Host         string `env:"HOST" envDefault:"localhost"`
	Port         int    `env:"PORT" envDefault:"587"`
	Username     string `env:"USERNAME"`
	Password     string `env:"PASSWORD"`
	Encryption   string `env:"ENCRYPTION" envDefault:"starttls"`
	FromAddress  string `env:"FROM_ADDRESS"`
	FromName     string `env:"FROM_NAME" envDefault:"NewsMail"`
	TemplatesDir string `env:"TEMPLATES_DIR"`
}

type CaptchaConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"false"`
	Length  int           `env:"LENGTH" envDefault:"5"`
	Width   int           `env:"WIDTH" envDefault:"240"`
	Height  int           `env:"HEIGHT" envDefault:"80"`
	Expiry  time.Duration `env:"EXPIRY" envDefault:"10m"`
}

type NewsConfig struct {
	APIKey          string        `env:"API_KEY"`
	BaseURL         string        `env:"BASE_URL" envDefault:"https://newsapi.org/v2"`
	Country         string        `env:"COUNTRY" envDefault:"us"`
	DefaultPageSize int           `env:"DEFAULT_PAGE_SIZE" envDefault:"12"`
	MaxPageSize     int           `env:"MAX_PAGE_SIZE" envDefault:"50"`
	Timeout         time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type RateLimitConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"true"`
	Rate    int           `env:"RATE" envDefault:"10"`
	Period  time.Duration `env:"PERIOD" envDefault:"1m"`
}

func LoadConfig(cfg *Config) error {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	if err := env.Parse(cfg); err != nil {
		return err
	}

	return Validate(cfg)
}

func Validate(cfg *Config) error {
	if err := ValidateJWTConfig(cfg.JWT); err != nil {
		return err
	}

	if cfg.Auth.VerificationTokenLength < 24 {
		return fmt.Errorf("AUTH_VERIFICATION_TOKEN_LENGTH must be at least 24 bytes, got %d", cfg.Auth.VerificationTokenLength)
	}
	if cfg.Auth.ResetTokenLength < 32 {
		return fmt.Errorf("AUTH_RESET_TOKEN_LENGTH must be at least 32 bytes, got %d", cfg.Auth.ResetTokenLength)
	}

	return nil
}

func ValidateJWTConfig(cfg JWTConfig) error {
	if cfg.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(cfg.SecretKey) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters, got %d", len(cfg.SecretKey))
	}
	if cfg.AccessExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}
	return nil
}
