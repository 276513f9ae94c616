package openapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/server"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewDocument),
	fx.Invoke(RegisterRoutes),
)

func NewDocument(cfg *config.Config) *Document {
	doc := New(cfg.App.Name+" API", "1.0.0")

	doc.AddOperation(http.MethodPost, "/register", "Register a new account", http.StatusOK, "Registration accepted, verification email requested")
	doc.AddOperation(http.MethodPost, "/login", "Authenticate and receive a signed assertion", http.StatusOK, "Token and public profile")
	doc.AddOperation(http.MethodGet, "/verify/{token}", "Verify an email address", http.StatusFound, "Redirect to the frontend")
	doc.AddOperation(http.MethodPost, "/forgot", "Request a password reset email", http.StatusOK, "Generic sent acknowledgment")
	doc.AddOperation(http.MethodGet, "/reset/validate/{token}", "Check whether a reset token is usable", http.StatusOK, "Validity flag")
	doc.AddOperation(http.MethodPost, "/reset/{token}", "Set a new password with a reset token", http.StatusOK, "Password updated")
	doc.AddOperation(http.MethodGet, "/captcha", "Issue a CAPTCHA challenge", http.StatusOK, "Challenge id and image")
	doc.AddOperation(http.MethodPost, "/verify-captcha", "Check a CAPTCHA answer", http.StatusOK, "Verification outcome")
	doc.AddOperation(http.MethodGet, "/api/me", "Authenticated caller's profile", http.StatusOK, "Public profile")
	doc.AddOperation(http.MethodGet, "/users/{email}", "Public profile by address", http.StatusOK, "Public profile")
	doc.AddOperation(http.MethodGet, "/news", "Proxy news search and headlines", http.StatusOK, "Upstream news payload")

	return doc
}

func RegisterRoutes(srv *server.Server, doc *Document) {
	srv.Get("/openapi.json", func(c echo.Context) error {
		data, err := doc.JSON()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server_error"})
		}
		return c.JSONBlob(http.StatusOK, data)
	})

	srv.Get("/openapi.yaml", func(c echo.Context) error {
		data, err := doc.YAML()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "server_error"})
		}
		return c.Blob(http.StatusOK, "application/yaml", data)
	})
}
