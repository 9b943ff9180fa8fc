package protocol

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/entity"
)

// Handshake - exchanges role labels. The initiator speaks first; the
// responder only answers a correct label.
func Handshake(conn Conn, role entity.Role) error {
	switch role {
	case entity.RoleInitiator:
		if err := conn.Send(role.Label()); err != nil {
			return fmt.Errorf("%w: send label: %w", apperror.ErrConnectionLost, err)
		}

		return expectLabel(conn, role.Opponent())
	case entity.RoleResponder:
		if err := expectLabel(conn, role.Opponent()); err != nil {
			return err
		}

		if err := conn.Send(role.Label()); err != nil {
			return fmt.Errorf("%w: send label: %w", apperror.ErrConnectionLost, err)
		}

		return nil
	case entity.RoleNone:
		return fmt.Errorf("%w: %s", apperror.ErrUnknownRole, role)
	default:
		return fmt.Errorf("%w: %d", apperror.ErrUnknownRole, int(role))
	}
}

func expectLabel(conn Conn, peer entity.Role) error {
	label, err := conn.Receive()
	if err != nil {
		return fmt.Errorf("%w: receive label: %w", apperror.ErrConnectionLost, err)
	}

	if label != peer.Label() {
		return fmt.Errorf("%w: expected %q, got %q", apperror.ErrHandshakeMismatch, peer.Label(), label)
	}

	return nil
}
