package protocol

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-p2p/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-p2p/internal/entity"
)

const (
	TokenRematch = "REMATCH"
	TokenQuit    = "QUIT"
)

type MessageKind int

const (
	KindMove MessageKind = iota + 1
	KindRematch
	KindQuit
)

// Message is one decoded wire payload: a move or a control token.
type Message struct {
	Kind MessageKind
	Move int
}

func EncodeMove(move int) string {
	return strconv.Itoa(move)
}

func EncodeDecision(again bool) string {
	if again {
		return TokenRematch
	}

	return TokenQuit
}

// DecodeMessage - parses a payload. Moves are a single ASCII digit 1..9,
// so they never collide with the control tokens.
func DecodeMessage(payload string) (Message, error) {
	payload = strings.TrimSpace(payload)

	switch payload {
	case TokenRematch:
		return Message{Kind: KindRematch}, nil
	case TokenQuit:
		return Message{Kind: KindQuit}, nil
	}

	if len(payload) != 1 || payload[0] < '0'+entity.MinMove || payload[0] > '0'+entity.MaxMove {
		return Message{}, fmt.Errorf("%w: %q", apperror.ErrMalformedRemoteMessage, payload)
	}

	return Message{Kind: KindMove, Move: int(payload[0] - '0')}, nil
}
