package websocket

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxMessageSize = 1024
	writeWait      = 10 * time.Second
)

var ErrUnexpectedFrame = errors.New("unexpected websocket frame")

// Conn carries one logical message per text frame.
type Conn struct {
	conn *websocket.Conn

	closeOnce sync.Once
	closeErr  error
}

func NewConn(conn *websocket.Conn) *Conn {
	conn.SetReadLimit(maxMessageSize)

	return &Conn{conn: conn}
}

func (that *Conn) Send(payload string) error {
	if err := that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err := that.conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Conn) Receive() (string, error) {
	msgType, data, err := that.conn.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("failed to read message: %w", err)
	}

	if msgType != websocket.TextMessage {
		return "", fmt.Errorf("%w: type %d", ErrUnexpectedFrame, msgType)
	}

	return string(data), nil
}

// Close - sends a close frame and releases the socket; safe to call more than once.
func (that *Conn) Close() error {
	that.closeOnce.Do(func() {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = that.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))

		that.closeErr = that.conn.Close()
	})

	return that.closeErr
}
