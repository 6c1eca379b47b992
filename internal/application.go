package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/team-black-box/tici-taca-toey-server/internal/config"
	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
	"github.com/team-black-box/tici-taca-toey-server/internal/repository"
	"github.com/team-black-box/tici-taca-toey-server/internal/repository/storage"
	"github.com/team-black-box/tici-taca-toey-server/internal/usecase"
	"github.com/team-black-box/tici-taca-toey-server/transport/rest"
	"github.com/team-black-box/tici-taca-toey-server/transport/websocket"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	var matchRepo repository.MatchRepository
	if conf.Redis.Enabled() {
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		matchRepo = repository.NewMatchRepository(redisStorage.Connection, conf.Redis.TTL)
		log.Info("match archive enabled", "addr", conf.Redis.GetRedisAddr())
	}

	gameManager := usecase.NewGameManager(logger, archiveOf(matchRepo), usecase.Options{
		TimePerPlayer:      conf.Game.TimePerPlayer,
		IncrementPerPlayer: conf.Game.IncrementPerPlayer,
		TickInterval:       conf.Game.TickInterval,
		MatchRetention:     conf.Game.MatchRetention,
	})
	defer gameManager.Close()

	go gameManager.StartSweeper(ctx, conf.Game.SweepInterval)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, gameManager, lookupOf(matchRepo))
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort, "tls", conf.TLS.Enabled())
		wsServer := websocket.New(logger, gameManager, websocket.Options{
			RegisterTimeout: conf.Socket.RegisterTimeout,
			SendBuffer:      conf.Socket.SendBuffer,
		})
		if wsErr := wsServer.Start(ctx, conf.SocketPort, conf.TLS); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// archiveOf and lookupOf keep a disabled archive a true nil interface.
func archiveOf(repo repository.MatchRepository) interface {
	Save(ctx context.Context, match entity.MatchView) error
} {
	if repo == nil {
		return nil
	}

	return repo
}

func lookupOf(repo repository.MatchRepository) interface {
	GetByID(ctx context.Context, id string) (*entity.MatchView, error)
} {
	if repo == nil {
		return nil
	}

	return repo
}
