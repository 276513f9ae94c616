package mail

import (
	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/services/logging"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(NewMailService),
)

func NewMailService(cfg *config.Config, logger *logging.Service) (*Service, error) {
	return NewService(&cfg.Mail, logger)
}
