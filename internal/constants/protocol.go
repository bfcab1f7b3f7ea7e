package constants

import "time"

// World Protocol Constants
//
// Every world packet is framed by a short header whose bytes (and only those)
// pass through the header cipher once the session is authenticated.
//
// Client → server:
//   [size 2 bytes BE, counts the opcode bytes]
//   [opcode 4 bytes LE]
//   [payload]
//
// Server → client:
//   [size 2 bytes BE, counts the opcode bytes]
//   [opcode 2 bytes LE]
//   [payload]
const (
	// ClientHeaderSize is the size of an outbound packet header.
	ClientHeaderSize = 6

	// ServerHeaderSize is the size of an inbound packet header.
	ServerHeaderSize = 4

	// ClientOpcodeSize is the opcode width in outbound headers.
	ClientOpcodeSize = 4

	// ServerOpcodeSize is the opcode width in inbound headers.
	ServerOpcodeSize = 2

	// MaxPacketSize is the largest value the 16-bit size field can carry.
	MaxPacketSize = 0xFFFF
)

// Session Key Constants
const (
	// SessionKeySize is the length of the SRP6 session key shared with the realm.
	SessionKeySize = 40

	// AntiCheatKeySize is the length of each RC4 key used for warden traffic.
	AntiCheatKeySize = 16
)

// Buffer Pool Size Constants
const (
	// DefaultReadBufSize is the initial read buffer size for a world connection.
	// Buffers grow on demand up to MaxPacketSize.
	DefaultReadBufSize = 4096

	// DefaultSendBufSize is the initial send buffer size for a world connection.
	DefaultSendBufSize = 1024

	// DefaultSendQueueSize is the bounded outbound queue of a session.
	DefaultSendQueueSize = 256
)

// Connection Timing Constants
const (
	// DefaultReadTimeout bounds a single packet read.
	DefaultReadTimeout = 120 * time.Second

	// DefaultWriteTimeout bounds a single packet write.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultPingInterval is the keepalive cadence for CMSG_PING.
	DefaultPingInterval = 30 * time.Second
)
