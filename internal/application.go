package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/config"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/console"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/entity"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/protocol"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/repository"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/transport"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/transport/tcp"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/transport/websocket"
)

// RunApp - plays one session on the terminal until QUIT, a fatal error or a signal.
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

	return run(ctx, logger, conf, os.Stdin, os.Stdout)
}

func run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	sessionID := uuid.NewString()
	log := logger.With("component", "app", "session_id", sessionID)

	role, err := entity.ParseRole(conf.Role)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts := []protocol.Option{protocol.WithSessionID(sessionID)}

	if conf.Redis.Enabled {
		client, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err := client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		opts = append(opts, protocol.WithPublisher(repository.NewRoundRepository(client, conf.Redis.Channel)))
		log.Info("publishing rounds", "channel", conf.Redis.Channel)
	}

	conn, err := connect(ctx, logger, conf, role)
	if err != nil {
		return err
	}

	// A blocked Receive only returns once the connection is closed.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	session := entity.NewSession(role, conf.Name)
	engine := protocol.NewEngine(logger, conn, console.New(in, out), session, opts...)

	err = engine.Run(ctx)
	if err != nil && ctx.Err() != nil {
		log.Info("session interrupted", "error", err)
		return nil
	}

	if err != nil {
		return fmt.Errorf("session failed: %w", err)
	}

	return nil
}

// connect - the responder waits for exactly one peer, the initiator dials it.
func connect(ctx context.Context, logger *slog.Logger, conf *config.Config, role entity.Role) (protocol.Conn, error) {
	log := logger.With("component", "app", "method", "connect", "transport", conf.Transport)

	policy := transport.RetryPolicy{
		MaxRetries:      conf.Dial.MaxRetries,
		InitialInterval: conf.Dial.InitialInterval,
		MaxInterval:     conf.Dial.MaxInterval,
	}

	var (
		conn protocol.Conn
		err  error
	)

	switch conf.Transport {
	case config.TransportTCP:
		if role == entity.RoleResponder {
			conn, err = acceptTCP(ctx, log, logger, conf.Listen.Addr())
		} else {
			log.Info("dialing peer", "addr", conf.Peer.Addr())
			conn, err = dialTCP(ctx, logger, conf.Peer.Addr(), policy)
		}
	case config.TransportWebSocket:
		if role == entity.RoleResponder {
			conn, err = acceptWebSocket(ctx, log, logger, conf.Listen.Addr())
		} else {
			log.Info("dialing peer", "addr", conf.Peer.Addr())
			conn, err = dialWebSocket(ctx, logger, conf.Peer.Addr(), policy)
		}
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownTransport, conf.Transport)
	}

	if err != nil {
		return nil, fmt.Errorf("could not connect to peer: %w", err)
	}

	return conn, nil
}

func acceptTCP(ctx context.Context, log, logger *slog.Logger, addr string) (protocol.Conn, error) {
	listener, err := tcp.Listen(logger, addr)
	if err != nil {
		return nil, err
	}

	log.Info("waiting for peer", "addr", listener.Addr().String())

	conn, err := listener.Accept(ctx)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	return conn, nil
}

func dialTCP(ctx context.Context, logger *slog.Logger, addr string, policy transport.RetryPolicy) (protocol.Conn, error) {
	conn, err := tcp.Dial(ctx, logger, addr, policy)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func acceptWebSocket(ctx context.Context, log, logger *slog.Logger, addr string) (protocol.Conn, error) {
	listener, err := websocket.Listen(logger, addr)
	if err != nil {
		return nil, err
	}

	log.Info("waiting for peer", "addr", listener.Addr().String())

	conn, err := listener.Accept(ctx)
	if err != nil {
		return nil, err
	}

	return conn, nil
}

func dialWebSocket(ctx context.Context, logger *slog.Logger, addr string, policy transport.RetryPolicy) (protocol.Conn, error) {
	conn, err := websocket.Dial(ctx, logger, addr, policy)
	if err != nil {
		return nil, err
	}

	return conn, nil
}
