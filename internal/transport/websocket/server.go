package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/transport"
	"github.com/rocketscienceinc/tictactoe-p2p/pkg/handlers"
)

const (
	Path     = "/ws"
	PingPath = "/ping"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  maxMessageSize,
	WriteBufferSize: maxMessageSize,
}

// Listener serves Path and hands over the first upgraded connection.
type Listener struct {
	logger   *slog.Logger
	listener net.Listener
	server   *http.Server

	conns chan *websocket.Conn
}

func Listen(logger *slog.Logger, addr string) (*Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	that := &Listener{
		logger:   logger.With("component", "websocket-listener"),
		listener: listener,
		conns:    make(chan *websocket.Conn, 1),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(Path, that.upgrade)
	mux.HandleFunc(PingPath, handlers.PingHandler(that.available))

	that.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := that.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			that.logger.Error("websocket server error", "error", err)
		}
	}()

	return that, nil
}

func (that *Listener) Addr() net.Addr {
	return that.listener.Addr()
}

func (that *Listener) available() bool {
	return len(that.conns) == 0
}

// upgrade - only one peer may join; later attempts are refused before upgrading.
func (that *Listener) upgrade(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgrade", "remote", req.RemoteAddr)

	if !that.available() {
		http.Error(writer, "a peer is already connected", http.StatusConflict)
		return
	}

	conn, err := upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	select {
	case that.conns <- conn:
		log.Info("peer connected")
	default:
		log.Warn("peer rejected, session already taken")
		_ = conn.Close()
	}
}

// Accept - waits for the first peer or ctx, then stops serving new upgrades.
func (that *Listener) Accept(ctx context.Context) (*Conn, error) {
	defer func() {
		if err := that.Close(); err != nil {
			that.logger.Debug("could not stop websocket server", "error", err)
		}
	}()

	select {
	case conn := <-that.conns:
		return NewConn(conn), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("accept canceled: %w", ctx.Err())
	}
}

// Close - stops the http server; hijacked peer connections stay open.
func (that *Listener) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	return that.server.Shutdown(ctx)
}

// Dial - connects to ws://addr/ws, retrying per policy.
func Dial(ctx context.Context, logger *slog.Logger, addr string, policy transport.RetryPolicy) (*Conn, error) {
	target := url.URL{Scheme: "ws", Host: addr, Path: Path}
	log := logger.With("component", "websocket-dialer", "url", target.String())

	var conn *websocket.Conn

	err := transport.Retry(ctx, log, policy, func() error {
		var (
			err  error
			resp *http.Response
		)

		conn, resp, err = websocket.DefaultDialer.DialContext(ctx, target.String(), nil)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", target.String(), err)
	}

	log.Info("connected to peer")

	return NewConn(conn), nil
}
