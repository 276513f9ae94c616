package captcha

import (
	"github.com/mynews-app/backend/server"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewService, NewHandler),
	fx.Invoke(RegisterRoutes),
)

func RegisterRoutes(srv *server.Server, h *Handler) {
	srv.Get("/captcha", h.Generate)
	srv.Post("/verify-captcha", h.Verify)
}
