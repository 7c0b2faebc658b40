// Command tug-of-war-server starts the authoritative tug-of-war game
// server: a WebSocket endpoint driving the game loop, a small REST API for
// introspection, and a static file server for the bundled web client.
//
// Flags control host/port, the rule-preset directory, the static client
// directory, and debug logging. Every flag can also be set through the
// environment, optionally via a .env file.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"tug-of-war-server/api"
	"tug-of-war-server/game/config"
	"tug-of-war-server/game/room"
	"tug-of-war-server/game/service"
	"tug-of-war-server/transport/websocket"
)

const (
	Version = "1.0.0"
	AppName = "Tug of War Server"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err == nil {
		log.Info().Msg("Loaded environment variables from .env file")
	}

	cmd := &cli.Command{
		Name:    "tug-of-war-server",
		Usage:   "real-time multiplayer tug-of-war game server",
		Version: Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "host",
				Value:   "",
				Usage:   "interface to bind, empty for all",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.StringFlag{
				Name:    "port",
				Value:   "3000",
				Usage:   "HTTP server port",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing rule presets",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "static-dir",
				Value:   "public",
				Usage:   "directory with the web client, empty to disable",
				Sources: cli.EnvVars("STATIC_DIR"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("debug") {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Info().Str("version", Version).Msg(AppName)

	configManager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return fmt.Errorf("failed to create config manager: %w", err)
	}

	roomManager := room.NewManager()
	gameService := service.NewGameService(roomManager, configManager)

	hub := websocket.NewHub()
	go hub.Run()

	coordinator := websocket.NewCoordinator(gameService, hub)
	apiServer := api.NewServer(gameService, coordinator, cmd.String("static-dir"))

	addr := fmt.Sprintf("%s:%s", cmd.String("host"), cmd.String("port"))
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      apiServer,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		log.Info().Msgf("WebSocket: ws://%s/ws", addr)
		log.Info().Msgf("REST API: http://%s/api", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	log.Info().Msg("Server stopped")
	return nil
}
