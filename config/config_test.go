package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key := strings.SplitN(kv, "=", 2)[0]
		for _, prefix := range []string{"APP_", "SERVER_", "LOG_", "DATABASE_", "AUTH_", "JWT_", "MAIL_", "CAPTCHA_", "NEWS_", "RATELIMIT_"} {
			if strings.HasPrefix(key, prefix) {
				t.Setenv(key, "")
				os.Unsetenv(key)
			}
		}
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("JWT_SECRET_KEY", "a1b2c3d4e5f6g7h8i9j0k1l2m3n4o5p6q7r8s9t0")

	var cfg Config
	err := LoadConfig(&cfg)

	require.NoError(t, err)

	assert.Equal(t, "MyNews", cfg.App.Name)
	assert.Equal(t, "http://localhost:8080", cfg.App.URL)
	assert.Equal(t, "http://localhost:8080", cfg.App.FrontendURL)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, 24, cfg.Auth.VerificationTokenLength)
	assert.Equal(t, 24*time.Hour, cfg.Auth.VerificationExpiry)
	assert.Equal(t, 32, cfg.Auth.ResetTokenLength)
	assert.Equal(t, time.Hour, cfg.Auth.ResetExpiry)
	assert.False(t, cfg.Auth.RequireEmailVerification)
	assert.Equal(t, time.Hour, cfg.JWT.AccessExpiry)
	assert.Equal(t, "mynews", cfg.JWT.Issuer)
	assert.Equal(t, "https://newsapi.org/v2", cfg.News.BaseURL)
	assert.Equal(t, 12, cfg.News.DefaultPageSize)
	assert.Equal(t, 50, cfg.News.MaxPageSize)
	assert.False(t, cfg.Captcha.Enabled)
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	clearEnvVars(t)

	t.Setenv("JWT_SECRET_KEY", "a1b2c3d4e5f6g7h8i9j0k1l2m3n4o5p6q7r8s9t0")
	t.Setenv("APP_NAME", "Test Application")
	t.Setenv("APP_FRONTEND_URL", "https://mynews-frontend.netlify.app")
	t.Setenv("SERVER_PORT", "5001")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("AUTH_REQUIRE_EMAIL_VERIFICATION", "true")
	t.Setenv("AUTH_RESET_EXPIRY", "30m")
	t.Setenv("NEWS_COUNTRY", "gb")

	var cfg Config
	err := LoadConfig(&cfg)

	require.NoError(t, err)
	assert.Equal(t, "Test Application", cfg.App.Name)
	assert.Equal(t, "https://mynews-frontend.netlify.app", cfg.App.FrontendURL)
	assert.Equal(t, "5001", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.True(t, cfg.Auth.RequireEmailVerification)
	assert.Equal(t, 30*time.Minute, cfg.Auth.ResetExpiry)
	assert.Equal(t, "gb", cfg.News.Country)
}

func TestValidateJWTConfig(t *testing.T) {
	tests := []struct {
		name      string
		jwtConfig JWTConfig
		wantErr   string
	}{
		{
			name: "valid config",
			jwtConfig: JWTConfig{
				SecretKey:    "a1b2c3d4e5f6g7h8i9j0k1l2m3n4o5p6q7r8s9t0",
				AccessExpiry: time.Hour,
			},
		},
		{
			name: "missing secret",
			jwtConfig: JWTConfig{
				AccessExpiry: time.Hour,
			},
			wantErr: "JWT_SECRET_KEY is required",
		},
		{
			name: "short secret",
			jwtConfig: JWTConfig{
				SecretKey:    "short",
				AccessExpiry: time.Hour,
			},
			wantErr: "at least 32 characters",
		},
		{
			name: "non-positive expiry",
			jwtConfig: JWTConfig{
				SecretKey: "a1b2c3d4e5f6g7h8i9j0k1l2m3n4o5p6q7r8s9t0",
			},
			wantErr: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJWTConfig(tt.jwtConfig)
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_TokenLengths(t *testing.T) {
	cfg := &Config{
		JWT: JWTConfig{
			SecretKey:    "a1b2c3d4e5f6g7h8i9j0k1l2m3n4o5p6q7r8s9t0",
			AccessExpiry: time.Hour,
		},
		Auth: AuthConfig{
			VerificationTokenLength: 24,
			ResetTokenLength:        32,
		},
	}
	require.NoError(t, Validate(cfg))

	cfg.Auth.VerificationTokenLength = 16
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VERIFICATION_TOKEN_LENGTH")

	cfg.Auth.VerificationTokenLength = 24
	cfg.Auth.ResetTokenLength = 24
	err = Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RESET_TOKEN_LENGTH")
}
