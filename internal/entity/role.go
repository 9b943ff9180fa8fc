package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/apperror"
)

// Role is fixed for the lifetime of a connection.
type Role int

const (
	RoleNone Role = iota
	RoleInitiator
	RoleResponder
)

const (
	InitiatorLabel = "Player 1"
	ResponderLabel = "Player 2"
)

// ParseRole - maps a configuration value onto a Role.
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "initiator", "client", "player1":
		return RoleInitiator, nil
	case "responder", "server", "player2":
		return RoleResponder, nil
	default:
		return RoleNone, fmt.Errorf("%w: %q", apperror.ErrUnknownRole, value)
	}
}

// Mark - returns the mark placed by this role's moves.
func (that Role) Mark() Mark {
	switch that {
	case RoleInitiator:
		return MarkFirst
	case RoleResponder:
		return MarkSecond
	case RoleNone:
		return MarkEmpty
	default:
		panic(fmt.Sprintf("unknown role %d", int(that)))
	}
}

// Opponent - returns the role on the other end of the connection.
func (that Role) Opponent() Role {
	switch that {
	case RoleInitiator:
		return RoleResponder
	case RoleResponder:
		return RoleInitiator
	case RoleNone:
		return RoleNone
	default:
		panic(fmt.Sprintf("unknown role %d", int(that)))
	}
}

// Label - the fixed string exchanged during the handshake.
func (that Role) Label() string {
	switch that {
	case RoleInitiator:
		return InitiatorLabel
	case RoleResponder:
		return ResponderLabel
	case RoleNone:
		return ""
	default:
		panic(fmt.Sprintf("unknown role %d", int(that)))
	}
}

// IsDecider reports whether this role solicits and sends the rematch decision.
func (that Role) IsDecider() bool {
	return that == RoleInitiator
}

func (that Role) String() string {
	switch that {
	case RoleInitiator:
		return "initiator"
	case RoleResponder:
		return "responder"
	case RoleNone:
		return "none"
	default:
		return fmt.Sprintf("role(%d)", int(that))
	}
}

func (that Role) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Role) UnmarshalText(text []byte) error {
	switch string(text) {
	case "none":
		*that = RoleNone
		return nil
	default:
		role, err := ParseRole(string(text))
		if err != nil {
			return err
		}
		*that = role
		return nil
	}
}
