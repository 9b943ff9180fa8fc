package tcp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
)

const maxMessageSize = 1024

var ErrInvalidPayload = errors.New("payload must be a single line")

// Conn frames every message as one newline-terminated line.
type Conn struct {
	conn   net.Conn
	reader *bufio.Scanner
	writer *bufio.Writer

	closeOnce sync.Once
	closeErr  error
}

func NewConn(conn net.Conn) *Conn {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64), maxMessageSize)

	return &Conn{
		conn:   conn,
		reader: scanner,
		writer: bufio.NewWriter(conn),
	}
}

func (that *Conn) Send(payload string) error {
	if strings.ContainsAny(payload, "\r\n") {
		return fmt.Errorf("%w: %q", ErrInvalidPayload, payload)
	}

	if _, err := that.writer.WriteString(payload + "\n"); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := that.writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush message: %w", err)
	}

	return nil
}

func (that *Conn) Receive() (string, error) {
	if !that.reader.Scan() {
		if err := that.reader.Err(); err != nil {
			return "", fmt.Errorf("failed to read message: %w", err)
		}

		return "", io.EOF
	}

	return strings.TrimSuffix(that.reader.Text(), "\r"), nil
}

// Close - safe to call more than once.
func (that *Conn) Close() error {
	that.closeOnce.Do(func() {
		that.closeErr = that.conn.Close()
	})

	return that.closeErr
}

func (that *Conn) RemoteAddr() net.Addr {
	return that.conn.RemoteAddr()
}
