package testutils

import (
	"time"

	"github.com/mynews-app/backend/config"
)

// GetTestConfig returns a config with relaxed password rules and a low
// bcrypt cost so test suites stay fast.
func GetTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "MyNews",
			URL:         "http://localhost:8080",
			FrontendURL: "http://localhost:8080",
		},
		Auth: config.AuthConfig{
			MinLength:               3,
			BcryptCost:              4,
			VerificationTokenLength: 24,
			VerificationExpiry:      24 * time.Hour,
			ResetTokenLength:        32,
			ResetExpiry:             time.Hour,
		},
		JWT: config.JWTConfig{
			SecretKey:    "test-secret-key-test-secret-key-test",
			AccessExpiry: time.Hour,
			Issuer:       "mynews-test",
		},
		News: config.NewsConfig{
			Country:         "us",
			DefaultPageSize: 12,
			MaxPageSize:     50,
			Timeout:         5 * time.Second,
		},
		Captcha: config.CaptchaConfig{
			Length: 5,
			Width:  240,
			Height: 80,
			Expiry: 10 * time.Minute,
		},
	}
}
