package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
	"github.com/team-black-box/tici-taca-toey-server/pkg/handlers"
)

const shutdownTimeout = 5 * time.Second

type liveMatches interface {
	Match(id string) (entity.MatchView, bool)
	Roster() []entity.Profile
}

type matchArchive interface {
	GetByID(ctx context.Context, id string) (*entity.MatchView, error)
}

type Server struct {
	logger  *slog.Logger
	live    liveMatches
	archive matchArchive
}

// New builds the HTTP API; archive may be nil.
func New(logger *slog.Logger, live liveMatches, archive matchArchive) *Server {
	return &Server{
		logger:  logger.With("component", "rest"),
		live:    live,
		archive: archive,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", handlers.PingHandler)
	mux.HandleFunc("GET /health", that.handleHealth)
	mux.HandleFunc("GET /matches/{id}", that.handleMatch)

	return mux
}

func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
