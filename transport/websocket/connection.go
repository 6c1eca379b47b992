package websocket

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const writeTimeout = 5 * time.Second

var (
	ErrConnectionClosed = errors.New("connection is closed")
	ErrSendBufferFull   = errors.New("send buffer is full")
)

// connection is the engine's handle on one socket. Send only enqueues; a
// dedicated writer drains the queue so a slow client never blocks the engine.
type connection struct {
	id     string
	socket *websocket.Conn
	logger *slog.Logger

	outbox     chan any
	done       chan struct{}
	closeOnce  sync.Once
	registered atomic.Bool
}

func newConnection(logger *slog.Logger, id string, socket *websocket.Conn, buffer int) *connection {
	return &connection{
		id:     id,
		socket: socket,
		logger: logger.With("connection_id", id),
		outbox: make(chan any, buffer),
		done:   make(chan struct{}),
	}
}

func (that *connection) Send(msg any) error {
	select {
	case <-that.done:
		return ErrConnectionClosed
	default:
	}

	select {
	case that.outbox <- msg:
		return nil
	default:
		return ErrSendBufferFull
	}
}

func (that *connection) writeLoop(ctx context.Context) {
	log := that.logger.With("method", "writeLoop")

	for {
		select {
		case <-that.done:
			return
		case <-ctx.Done():
			return
		case msg := <-that.outbox:
			writeCtx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, that.socket, msg)
			cancel()

			if err != nil {
				log.Warn("failed to write message", "error", err)
				that.close(websocket.StatusInternalError, "write failed")
				return
			}
		}
	}
}

func (that *connection) close(code websocket.StatusCode, reason string) {
	that.closeOnce.Do(func() {
		close(that.done)
		_ = that.socket.Close(code, reason)
	})
}
