package apperror

import "errors"

var (
	ErrInvalidMove            = errors.New("invalid move")
	ErrMalformedRemoteMessage = errors.New("malformed remote message")
	ErrConnectionLost         = errors.New("connection lost")
	ErrHandshakeMismatch      = errors.New("handshake mismatch")
	ErrUnknownRole            = errors.New("unknown role")
	ErrUnknownTransport       = errors.New("unknown transport")
)
