package protocol

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/entity"
)

var errNoInput = errors.New("no more scripted input")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// scriptedConn replays incoming payloads and records everything sent.
type scriptedConn struct {
	incoming []string
	sent     []string
	closed   int
	sendErr  error
}

func (that *scriptedConn) Send(payload string) error {
	if that.sendErr != nil {
		return that.sendErr
	}

	that.sent = append(that.sent, payload)

	return nil
}

func (that *scriptedConn) Receive() (string, error) {
	if len(that.incoming) == 0 {
		return "", io.EOF
	}

	payload := that.incoming[0]
	that.incoming = that.incoming[1:]

	return payload, nil
}

func (that *scriptedConn) Close() error {
	that.closed++
	return nil
}

type rejection struct {
	move int
	err  error
}

// scriptedUI feeds moves and decisions and records what was rendered.
type scriptedUI struct {
	moves     []int
	decisions []bool

	instructions int
	boards       int
	announced    []int
	rejected     []rejection
	outcomes     []entity.Outcome
	stats        []entity.Stats
	errs         []error
}

func (that *scriptedUI) RequestLocalMove(_ entity.Role) (int, error) {
	if len(that.moves) == 0 {
		return 0, errNoInput
	}

	move := that.moves[0]
	that.moves = that.moves[1:]

	return move, nil
}

func (that *scriptedUI) RequestRematchDecision() (bool, error) {
	if len(that.decisions) == 0 {
		return false, errNoInput
	}

	decision := that.decisions[0]
	that.decisions = that.decisions[1:]

	return decision, nil
}

func (that *scriptedUI) Instructions(_ entity.Role) { that.instructions++ }

func (that *scriptedUI) RenderBoard(_ *entity.Board) { that.boards++ }

func (that *scriptedUI) AnnounceMove(_ entity.Role, move int) {
	that.announced = append(that.announced, move)
}

func (that *scriptedUI) RejectMove(move int, err error) {
	that.rejected = append(that.rejected, rejection{move: move, err: err})
}

func (that *scriptedUI) AnnounceOutcome(outcome entity.Outcome) {
	that.outcomes = append(that.outcomes, outcome)
}

func (that *scriptedUI) RenderStats(stats entity.Stats) {
	that.stats = append(that.stats, stats)
}

func (that *scriptedUI) ReportError(err error) {
	that.errs = append(that.errs, err)
}

type mockPublisher struct {
	mock.Mock
}

func (that *mockPublisher) Publish(ctx context.Context, event *entity.RoundEvent) error {
	args := that.Called(ctx, event)
	return args.Error(0)
}
