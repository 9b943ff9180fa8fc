package entity

import "fmt"

// Stats holds the local player's counters. Games == Wins+Ties+Losses
// whenever no round is in progress.
type Stats struct {
	OwnName   string `json:"own_name"`
	LastMover Role   `json:"last_mover"`
	Games     int    `json:"games"`
	Wins      int    `json:"wins"`
	Ties      int    `json:"ties"`
	Losses    int    `json:"losses"`
}

// Session owns the board of the current round and the counters that
// outlive it.
type Session struct {
	role  Role
	board *Board
	stats Stats
}

func NewSession(role Role, ownName string) *Session {
	if ownName == "" {
		ownName = role.Label()
	}

	return &Session{
		role:  role,
		board: NewBoard(),
		stats: Stats{OwnName: ownName},
	}
}

func (that *Session) Role() Role {
	return that.role
}

func (that *Session) Board() *Board {
	return that.board
}

func (that *Session) Stats() Stats {
	return that.stats
}

func (that *Session) SetLastMover(role Role) {
	that.stats.LastMover = role
}

// RecordOutcome - scores one finished round from the local role's perspective.
func (that *Session) RecordOutcome(outcome Outcome) error {
	switch outcome.Kind {
	case OutcomeTie:
		that.stats.Ties++
	case OutcomeWin:
		switch outcome.Winner {
		case that.role:
			that.stats.Wins++
		case that.role.Opponent():
			that.stats.Losses++
		default:
			return fmt.Errorf("unknown winner %s", outcome.Winner)
		}
	default:
		return fmt.Errorf("unknown outcome kind %d", int(outcome.Kind))
	}

	that.stats.Games++

	return nil
}

// NewRound - clears the board for a rematch; counters are kept.
func (that *Session) NewRound() {
	that.board.Reset()
}
