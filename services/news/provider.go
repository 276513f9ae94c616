package news

import (
	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/server"
	"github.com/mynews-app/backend/services/logging"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		func(cfg *config.Config, logger *logging.Service) *Client {
			return NewClient(&cfg.News, logger)
		},
		NewHandler,
	),
	fx.Invoke(RegisterRoutes),
)

func RegisterRoutes(srv *server.Server, h *Handler) {
	srv.Get("/news", h.Get)
}
