package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mynews-app/backend/config"
	"github.com/mynews-app/backend/database"
	"github.com/mynews-app/backend/server"
	"github.com/mynews-app/backend/services/auth"
	"github.com/mynews-app/backend/services/logging"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

type App struct {
	fx *fx.App
}

// New assembles the application container. cfg may be nil, in which case
// configuration loads from the environment.
func New(cfg *config.Config, modules ...fx.Option) *App {
	options := []fx.Option{
		config.NewProvider(cfg),
		logging.Module,
		fx.Provide(func() *database.ModelsOption {
			return database.WithModels(&auth.User{}, &auth.LoginActivity{})
		}),
		database.Module,
		server.NewProvider(),
		fx.WithLogger(func(logger *logging.Service) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Logger()}
		}),
	}
	options = append(options, modules...)

	return &App{
		fx: fx.New(options...),
	}
}

func (a *App) Start(ctx context.Context) error {
	return a.fx.Start(ctx)
}

func (a *App) Stop(ctx context.Context) error {
	return a.fx.Stop(ctx)
}

// Run starts the application and blocks until an interrupt or terminate
// signal arrives, then shuts down gracefully.
func (a *App) Run() {
	if err := a.Start(context.Background()); err != nil {
		log.Fatalf("failed to start application: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.Stop(ctx); err != nil {
		log.Printf("failed to stop application gracefully: %v", err)
	}
}
