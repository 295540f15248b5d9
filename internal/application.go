package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/pegsolitaire-backend/internal/config"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/repository"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/repository/storage"
	"github.com/rocketscienceinc/pegsolitaire-backend/internal/service"
	"github.com/rocketscienceinc/pegsolitaire-backend/transport/console"
	"github.com/rocketscienceinc/pegsolitaire-backend/transport/rest"
)

var ErrUnknownMode = errors.New("unknown application mode")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	gameRepo, closeRepo, err := newGameRepository(ctx, log, conf.Redis)
	if err != nil {
		return err
	}
	defer closeRepo()

	gameService := service.NewGameService(logger, gameRepo)

	switch conf.Mode {
	case config.ModeConsole:
		game, playErr := console.New(logger, gameService, os.Stdin, os.Stdout, conf.Game.ShowHelp).Play(ctx)
		if playErr != nil && !errors.Is(playErr, context.Canceled) {
			return fmt.Errorf("console game failed: %w", playErr)
		}

		if game != nil {
			log.Info("Console game over", "gameID", game.ID, "pegs", game.Pegs, "moves", game.Moves)
		}

		return nil
	case config.ModeServer:
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(logger, gameService)); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		log.Info("Application context canceled, shutting down")
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, conf.Mode)
	}
}

// newGameRepository uses Redis when an address is configured and falls back to memory otherwise.
func newGameRepository(ctx context.Context, log *slog.Logger, conf config.Redis) (repository.GameRepository, func(), error) {
	addr := conf.GetRedisAddr()
	if addr == "" {
		log.Info("Redis is not configured, games are kept in memory")
		return repository.NewMemoryGameRepository(), func() {}, nil
	}

	redisStorage, err := storage.New(ctx, addr)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewGameRepository(redisStorage, conf.TTL), closeFn, nil
}
