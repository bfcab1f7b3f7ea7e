package session

import "errors"

var (
	// ErrSendQueueFull is returned when the outgoing queue cannot accept a packet.
	// The session is closed when this happens.
	ErrSendQueueFull = errors.New("send queue full")

	// ErrClosed is returned when sending on a closed session.
	ErrClosed = errors.New("session closed")

	// ErrSendTimeout is returned by SendSync when the queue stayed full.
	ErrSendTimeout = errors.New("send timeout")
)
