package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/middleware/ratelimit"
	"github.com/mynews-app/backend/server"
	"github.com/mynews-app/backend/services/captcha"
	"github.com/mynews-app/backend/services/jwt"
	"github.com/mynews-app/backend/services/logging"
	"github.com/mynews-app/backend/services/mail"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Options(
	fx.Provide(
		func(db *gorm.DB) Store { return NewGormStore(db) },
		func(mailSvc *mail.Service, cfg *config.Config) Notifier { return NewMailNotifier(mailSvc, cfg) },
		func(jwtSvc *jwt.Service) AssertionIssuer { return jwtSvc },
		NewService,
		func(svc *Service, captchaSvc *captcha.Service, cfg *config.Config, logger *logging.Service) *Handler {
			return NewHandler(svc, captchaSvc, cfg, logger)
		},
	),
	fx.Invoke(RegisterRoutes),
)

func RegisterRoutes(srv *server.Server, h *Handler, cfg *config.Config) {
	var limited []echo.MiddlewareFunc
	if cfg.RateLimit.Enabled {
		limited = append(limited, ratelimit.Middleware(&ratelimit.Config{
			Rate:   cfg.RateLimit.Rate,
			Period: cfg.RateLimit.Period,
			OnLimitReached: func(c echo.Context) error {
				return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
			},
		}))
	}

	srv.Post("/register", h.Register)
	srv.Post("/login", h.Login, limited...)
	srv.Get("/verify/:token", h.VerifyEmail)
	srv.Post("/forgot", h.ForgotPassword, limited...)
	srv.Get("/reset/validate/:token", h.ValidateResetToken)
	srv.Post("/reset/:token", h.ResetPassword)
}
