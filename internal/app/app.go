package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/soloviov/gamelobby-server/internal/config"
	"github.com/soloviov/gamelobby-server/internal/core"
	transporthttp "github.com/soloviov/gamelobby-server/internal/transport/http"
)

// App wires together the coordinator core and the transport layer.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	log             *zerolog.Logger
}

// New constructs the application with provided configuration. All room and
// connection state lives in process memory and dies with the process.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	store := core.NewRoomStore(cfg.RoomCapacity)
	hub := core.NewHub(store, logger)
	server := transporthttp.NewServer(hub, cfg, logger)

	logger.Info().Int("room_capacity", store.Capacity()).Msg("coordinator initialized")

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		log:             logger,
	}
}

// Run starts the HTTP server and blocks until context cancellation or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
