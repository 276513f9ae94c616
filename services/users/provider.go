package users

import (
	jwtmw "github.com/mynews-app/backend/middleware/jwt"
	"github.com/mynews-app/backend/server"
	jwtservice "github.com/mynews-app/backend/services/jwt"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewService, NewHandler),
	fx.Invoke(RegisterRoutes),
)

func RegisterRoutes(srv *server.Server, h *Handler, jwtSvc *jwtservice.Service) {
	srv.Get("/api/me", h.Me, jwtmw.Middleware(jwtSvc))
	srv.Get("/users/:email", h.GetByEmail, jwtmw.Middleware(jwtSvc))
}
