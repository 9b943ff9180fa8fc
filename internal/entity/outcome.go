package entity

import "fmt"

type OutcomeKind int

const (
	OutcomeWin OutcomeKind = iota + 1
	OutcomeTie
)

// Outcome is the terminal result of a round.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Role        `json:"winner,omitempty"`
}

func WinFor(role Role) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: role}
}

func Tie() Outcome {
	return Outcome{Kind: OutcomeTie}
}

func (that Outcome) IsTie() bool {
	return that.Kind == OutcomeTie
}

func (that Outcome) String() string {
	switch that.Kind {
	case OutcomeWin:
		return fmt.Sprintf("win:%s", that.Winner)
	case OutcomeTie:
		return "tie"
	default:
		return "none"
	}
}

func (that OutcomeKind) MarshalText() ([]byte, error) {
	switch that {
	case OutcomeWin:
		return []byte("win"), nil
	case OutcomeTie:
		return []byte("tie"), nil
	default:
		return nil, fmt.Errorf("unknown outcome kind %d", int(that))
	}
}

func (that *OutcomeKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "win":
		*that = OutcomeWin
	case "tie":
		*that = OutcomeTie
	default:
		return fmt.Errorf("unknown outcome kind %q", string(text))
	}

	return nil
}
