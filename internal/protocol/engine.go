package protocol

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/entity"
)

type State int

const (
	StateHandshake State = iota
	StateAwaitLocalMove
	StateAwaitRemoteMove
	StateRoundOver
	StateRematchNegotiation
	StateTerminated
)

func (that State) String() string {
	switch that {
	case StateHandshake:
		return "handshake"
	case StateAwaitLocalMove:
		return "await_local_move"
	case StateAwaitRemoteMove:
		return "await_remote_move"
	case StateRoundOver:
		return "round_over"
	case StateRematchNegotiation:
		return "rematch_negotiation"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", int(that))
	}
}

// Publisher receives every finished round. Failures are logged only.
type Publisher interface {
	Publish(ctx context.Context, event *entity.RoundEvent) error
}

// Engine drives one session from handshake to termination. It is not safe
// for concurrent use; exactly one goroutine calls Run.
type Engine struct {
	logger    *slog.Logger
	sessionID string

	conn      Conn
	ui        UI
	publisher Publisher
	session   *entity.Session

	state   State
	outcome entity.Outcome
	err     error

	now func() time.Time
}

type Option func(*Engine)

// WithPublisher - reports finished rounds to publisher.
func WithPublisher(publisher Publisher) Option {
	return func(that *Engine) {
		that.publisher = publisher
	}
}

func WithSessionID(id string) Option {
	return func(that *Engine) {
		that.sessionID = id
	}
}

func NewEngine(logger *slog.Logger, conn Conn, ui UI, session *entity.Session, opts ...Option) *Engine {
	engine := &Engine{
		logger:  logger,
		conn:    conn,
		ui:      ui,
		session: session,
		state:   StateHandshake,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(engine)
	}

	engine.logger = engine.logger.With("component", "engine", "role", session.Role().String(), "session_id", engine.sessionID)

	return engine
}

func (that *Engine) State() State {
	return that.state
}

func (that *Engine) Session() *entity.Session {
	return that.session
}

// Run - loops until Terminated and always closes the connection. It returns
// the fatal error that ended the session, or nil after a QUIT.
func (that *Engine) Run(ctx context.Context) error {
	defer func() {
		if err := that.conn.Close(); err != nil {
			that.logger.Debug("could not close connection", "error", err)
		}
	}()

	for that.state != StateTerminated {
		next := that.step(ctx)
		that.logger.Debug("state transition", "from", that.state.String(), "to", next.String())
		that.state = next
	}

	return that.err
}

func (that *Engine) step(ctx context.Context) State {
	switch that.state {
	case StateHandshake:
		return that.handshake()
	case StateAwaitLocalMove:
		return that.awaitLocalMove()
	case StateAwaitRemoteMove:
		return that.awaitRemoteMove()
	case StateRoundOver:
		return that.roundOver(ctx)
	case StateRematchNegotiation:
		return that.rematchNegotiation()
	case StateTerminated:
		return StateTerminated
	default:
		return that.fail(fmt.Errorf("unknown engine state %d", int(that.state)))
	}
}

// roundStart - turn order is fixed by role and never negotiated.
func (that *Engine) roundStart() State {
	if that.session.Role() == entity.RoleInitiator {
		return StateAwaitLocalMove
	}

	return StateAwaitRemoteMove
}

func (that *Engine) handshake() State {
	if err := Handshake(that.conn, that.session.Role()); err != nil {
		return that.fail(fmt.Errorf("handshake failed: %w", err))
	}

	that.logger.Info("handshake complete", "peer", that.session.Role().Opponent().Label())
	that.ui.Instructions(that.session.Role())

	return that.roundStart()
}

func (that *Engine) awaitLocalMove() State {
	role := that.session.Role()
	board := that.session.Board()

	for {
		move, err := that.ui.RequestLocalMove(role)
		if err != nil {
			return that.fail(fmt.Errorf("could not read local move: %w", err))
		}

		err = board.ApplyMove(move, role)
		if errors.Is(err, apperror.ErrInvalidMove) {
			that.ui.RejectMove(move, err)
			continue
		}
		if err != nil {
			return that.fail(fmt.Errorf("could not apply local move: %w", err))
		}

		that.session.SetLastMover(role)
		that.ui.RenderBoard(board)

		if err = that.conn.Send(EncodeMove(move)); err != nil {
			return that.fail(fmt.Errorf("%w: send move: %w", apperror.ErrConnectionLost, err))
		}

		return that.evaluate(role, StateAwaitRemoteMove)
	}
}

func (that *Engine) awaitRemoteMove() State {
	peer := that.session.Role().Opponent()

	payload, err := that.conn.Receive()
	if err != nil {
		return that.fail(fmt.Errorf("%w: receive move: %w", apperror.ErrConnectionLost, err))
	}

	msg, err := DecodeMessage(payload)
	if err != nil {
		return that.fail(err)
	}

	if msg.Kind != KindMove {
		return that.fail(fmt.Errorf("%w: control token %q while waiting for a move", apperror.ErrMalformedRemoteMessage, payload))
	}

	// An occupied cell means the two boards disagree.
	if err = that.session.Board().ApplyMove(msg.Move, peer); err != nil {
		return that.fail(fmt.Errorf("%w: %w", apperror.ErrMalformedRemoteMessage, err))
	}

	that.session.SetLastMover(peer)
	that.ui.AnnounceMove(peer, msg.Move)
	that.ui.RenderBoard(that.session.Board())

	return that.evaluate(peer, StateAwaitLocalMove)
}

// evaluate - checks only the role that just moved; a win on a full board is a win.
func (that *Engine) evaluate(mover entity.Role, next State) State {
	board := that.session.Board()

	switch {
	case board.HasWinner(mover):
		that.outcome = entity.WinFor(mover)
	case board.IsFull():
		that.outcome = entity.Tie()
	default:
		return next
	}

	return StateRoundOver
}

func (that *Engine) roundOver(ctx context.Context) State {
	log := that.logger.With("method", "roundOver")

	if err := that.session.RecordOutcome(that.outcome); err != nil {
		return that.fail(fmt.Errorf("could not record outcome: %w", err))
	}

	stats := that.session.Stats()
	log.Info("round finished", "outcome", that.outcome.String(), "games", stats.Games, "wins", stats.Wins, "ties", stats.Ties, "losses", stats.Losses)

	that.ui.AnnounceOutcome(that.outcome)

	if that.publisher != nil {
		event := &entity.RoundEvent{
			SessionID:  that.sessionID,
			Role:       that.session.Role(),
			Name:       stats.OwnName,
			Outcome:    that.outcome,
			Stats:      stats,
			FinishedAt: that.now().UTC(),
		}

		if err := that.publisher.Publish(ctx, event); err != nil {
			log.Error("could not publish round", "error", err)
		}
	}

	return StateRematchNegotiation
}

func (that *Engine) rematchNegotiation() State {
	var again bool

	if that.session.Role().IsDecider() {
		decision, err := that.ui.RequestRematchDecision()
		if err != nil {
			return that.fail(fmt.Errorf("could not read rematch decision: %w", err))
		}

		if err = that.conn.Send(EncodeDecision(decision)); err != nil {
			return that.fail(fmt.Errorf("%w: send decision: %w", apperror.ErrConnectionLost, err))
		}

		again = decision
	} else {
		payload, err := that.conn.Receive()
		if err != nil {
			return that.fail(fmt.Errorf("%w: receive decision: %w", apperror.ErrConnectionLost, err))
		}

		msg, err := DecodeMessage(payload)
		if err != nil {
			return that.fail(err)
		}

		switch msg.Kind {
		case KindRematch:
			again = true
		case KindQuit:
			again = false
		case KindMove:
			return that.fail(fmt.Errorf("%w: move %q while waiting for a decision", apperror.ErrMalformedRemoteMessage, payload))
		default:
			return that.fail(fmt.Errorf("%w: %q", apperror.ErrMalformedRemoteMessage, payload))
		}
	}

	if again {
		that.logger.Info("starting a new round")
		that.session.NewRound()
		that.outcome = entity.Outcome{}

		return that.roundStart()
	}

	that.logger.Info("session finished")
	that.ui.RenderStats(that.session.Stats())

	return StateTerminated
}

// fail - records a fatal error, surfaces it once and terminates.
func (that *Engine) fail(err error) State {
	that.logger.Error("session terminated", "state", that.state.String(), "error", err)
	that.err = err
	that.ui.ReportError(err)

	return StateTerminated
}
