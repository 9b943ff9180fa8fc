package protocol

import "github.com/rocketscienceinc/tictactoe-p2p/internal/entity"

// Conn is an established, ordered, whole-message channel to the peer.
type Conn interface {
	Send(payload string) error
	Receive() (string, error)
	Close() error
}

// Input supplies local decisions. Both calls may loop internally until the
// player enters something syntactically valid.
type Input interface {
	RequestLocalMove(role entity.Role) (int, error)
	RequestRematchDecision() (bool, error)
}

// Output renders what the engine reports.
type Output interface {
	Instructions(role entity.Role)
	RenderBoard(board *entity.Board)
	AnnounceMove(role entity.Role, move int)
	RejectMove(move int, err error)
	AnnounceOutcome(outcome entity.Outcome)
	RenderStats(stats entity.Stats)
	ReportError(err error)
}

// UI is the terminal collaborator seen from the engine.
type UI interface {
	Input
	Output
}
