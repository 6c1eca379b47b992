package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/team-black-box/tici-taca-toey-server/internal/apperror"
	"github.com/team-black-box/tici-taca-toey-server/internal/config"
	"github.com/team-black-box/tici-taca-toey-server/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type gameEngine interface {
	Play(ctx context.Context, intent entity.Intent) error
}

type Options struct {
	Clock           clock.Clock
	RegisterTimeout time.Duration
	SendBuffer      int
}

type Server struct {
	logger  *slog.Logger
	engine  gameEngine
	options Options
}

func New(logger *slog.Logger, engine gameEngine, options Options) *Server {
	if options.Clock == nil {
		options.Clock = clock.New()
	}

	if options.SendBuffer <= 0 {
		options.SendBuffer = 64
	}

	return &Server{
		logger:  logger.With("component", "websocket"),
		engine:  engine,
		options: options,
	}
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", that.handleSocket)
	mux.HandleFunc("/ws", that.handleSocket)

	return mux
}

// Start - starts WebSocket server and shuts it down when ctx is done.
func (that *Server) Start(ctx context.Context, port string, tls config.TLS) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	var err error
	if tls.Enabled() {
		err = srv.ListenAndServeTLS(tls.CertFile, tls.KeyFile)
	} else {
		err = srv.ListenAndServe()
	}

	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handleSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "handleSocket")

	socket, err := websocket.Accept(writer, req, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}

	ctx := req.Context()
	conn := newConnection(that.logger, uuid.NewString(), socket, that.options.SendBuffer)
	log = log.With("player_id", conn.id)
	log.Info("connection established")

	go conn.writeLoop(ctx)

	if that.options.RegisterTimeout > 0 {
		deadline := that.options.Clock.AfterFunc(that.options.RegisterTimeout, func() {
			if !conn.registered.Load() {
				log.Info("closing unregistered connection")
				conn.close(websocket.StatusPolicyViolation, "registration timeout")
			}
		})
		defer deadline.Stop()
	}

	defer func() {
		conn.close(websocket.StatusNormalClosure, "")

		if playErr := that.engine.Play(context.WithoutCancel(ctx), entity.NewPlayerDisconnect(conn.id)); playErr != nil {
			log.Error("failed to disconnect player", "error", playErr)
		}

		log.Info("connection closed")
	}()

	that.readLoop(ctx, conn)
}

func (that *Server) readLoop(ctx context.Context, conn *connection) {
	log := that.logger.With("method", "readLoop", "player_id", conn.id)

	for {
		msgType, data, err := conn.socket.Read(ctx)
		if err != nil {
			log.Debug("read stopped", "error", err)
			return
		}

		if msgType != websocket.MessageText {
			that.rejectMalformed(conn, "binary frames are not supported")
			continue
		}

		intent, err := decode(data, conn)
		if err != nil {
			log.Debug("malformed message", "error", err)
			that.rejectMalformed(conn, string(data))
			continue
		}

		if err = that.engine.Play(ctx, intent); err != nil {
			log.Debug("intent rejected", "type", intent.Type(), "error", err)
			continue
		}

		if intent.Type() == entity.TypeRegisterPlayer || intent.Type() == entity.TypeRegisterRobot {
			conn.registered.Store(true)
		}
	}
}

// rejectMalformed answers input that never reached the engine.
func (that *Server) rejectMalformed(conn *connection, message string) {
	if err := conn.Send(entity.NewErrorResponse(apperror.CodeBadRequest, message)); err != nil {
		that.logger.Warn("failed to send error", "method", "rejectMalformed", "error", err)
	}
}
