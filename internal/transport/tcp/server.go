package tcp

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/transport"
)

// Listener accepts exactly one peer.
type Listener struct {
	logger   *slog.Logger
	listener net.Listener
}

func Listen(logger *slog.Logger, addr string) (*Listener, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	return &Listener{
		logger:   logger.With("component", "tcp-listener"),
		listener: listener,
	}, nil
}

func (that *Listener) Addr() net.Addr {
	return that.listener.Addr()
}

// Accept - blocks until the first peer connects or ctx is done, then stops listening.
func (that *Listener) Accept(ctx context.Context) (*Conn, error) {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			_ = that.listener.Close()
		case <-done:
		}
	}()

	conn, err := that.listener.Accept()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("accept canceled: %w", ctx.Err())
		}

		return nil, fmt.Errorf("failed to accept peer: %w", err)
	}

	if err = that.listener.Close(); err != nil {
		that.logger.Debug("could not close listener", "error", err)
	}

	that.logger.Info("peer connected", "remote", conn.RemoteAddr().String())

	return NewConn(conn), nil
}

func (that *Listener) Close() error {
	return that.listener.Close()
}

// Dial - connects to a listening peer, retrying per policy.
func Dial(ctx context.Context, logger *slog.Logger, addr string, policy transport.RetryPolicy) (*Conn, error) {
	log := logger.With("component", "tcp-dialer", "addr", addr)

	var dialer net.Dialer
	var conn net.Conn

	err := transport.Retry(ctx, log, policy, func() error {
		var err error
		conn, err = dialer.DialContext(ctx, "tcp", addr)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}

	log.Info("connected to peer")

	return NewConn(conn), nil
}
