package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/udisondev/wowee/internal/constants"
	"github.com/udisondev/wowee/internal/crypto"
	"github.com/udisondev/wowee/internal/opcode"
)

// ErrPacketTooLarge is returned when a payload does not fit the 16-bit size field.
var ErrPacketTooLarge = errors.New("packet too large")

// Packet is a decoded (or to-be-encoded) world packet body tagged with its
// logical opcode. The wire opcode is resolved through the active opcode table
// at framing time.
type Packet struct {
	Opcode  opcode.Op
	Payload []byte
}

// WritePacket frames and writes a client packet to w.
// Precondition: payload lives at buf[constants.ClientHeaderSize : constants.ClientHeaderSize+payloadLen].
// Only the header bytes pass through cipher; a nil cipher sends the header in clear
// (used before the session key is known).
func WritePacket(w io.Writer, cipher crypto.HeaderCipher, buf []byte, wire uint16, payloadLen int) error {
	needed := constants.ClientHeaderSize + payloadLen
	if len(buf) < needed {
		return fmt.Errorf("write packet: buffer too small (need %d, have %d)", needed, len(buf))
	}
	size := payloadLen + constants.ClientOpcodeSize
	if size > constants.MaxPacketSize {
		return fmt.Errorf("write packet: %d bytes: %w", payloadLen, ErrPacketTooLarge)
	}

	header := buf[:constants.ClientHeaderSize]
	binary.BigEndian.PutUint16(header[0:2], uint16(size))
	binary.LittleEndian.PutUint32(header[2:6], uint32(wire))
	if cipher != nil {
		cipher.Encrypt(header)
	}

	if _, err := w.Write(buf[:needed]); err != nil {
		return fmt.Errorf("writing packet: %w", err)
	}
	return nil
}

// ReadPacket reads one server packet from r into buf.
// Returns the wire opcode and a subslice of buf holding the payload.
func ReadPacket(r io.Reader, cipher crypto.HeaderCipher, buf []byte) (uint16, []byte, error) {
	var header [constants.ServerHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, fmt.Errorf("reading packet header: %w", err)
	}
	if cipher != nil {
		cipher.Decrypt(header[:])
	}

	size := int(binary.BigEndian.Uint16(header[0:2]))
	wire := binary.LittleEndian.Uint16(header[2:4])
	if size < constants.ServerOpcodeSize {
		return 0, nil, fmt.Errorf("invalid packet size %d (opcode 0x%04X)", size, wire)
	}

	payloadLen := size - constants.ServerOpcodeSize
	if payloadLen > len(buf) {
		return 0, nil, fmt.Errorf("packet payload %d exceeds buffer size %d", payloadLen, len(buf))
	}

	payload := buf[:payloadLen]
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("reading packet payload (opcode 0x%04X): %w", wire, err)
	}
	return wire, payload, nil
}

// WriteServerPacket frames a server packet: 4-byte header, 16-bit opcode.
// Counterpart of ReadPacket; used by test servers and replay tools.
func WriteServerPacket(w io.Writer, cipher crypto.HeaderCipher, wire uint16, payload []byte) error {
	size := len(payload) + constants.ServerOpcodeSize
	if size > constants.MaxPacketSize {
		return fmt.Errorf("write server packet: %d bytes: %w", len(payload), ErrPacketTooLarge)
	}

	buf := make([]byte, constants.ServerHeaderSize+len(payload))
	binary.BigEndian.PutUint16(buf[0:2], uint16(size))
	binary.LittleEndian.PutUint16(buf[2:4], wire)
	if cipher != nil {
		cipher.Encrypt(buf[:constants.ServerHeaderSize])
	}
	copy(buf[constants.ServerHeaderSize:], payload)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("writing server packet: %w", err)
	}
	return nil
}

// ReadClientPacket reads one client packet (6-byte header, 32-bit opcode).
// Counterpart of WritePacket.
func ReadClientPacket(r io.Reader, cipher crypto.HeaderCipher) (uint32, []byte, error) {
	var header [constants.ClientHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return 0, nil, fmt.Errorf("reading client header: %w", err)
	}
	if cipher != nil {
		cipher.Decrypt(header[:])
	}

	size := int(binary.BigEndian.Uint16(header[0:2]))
	wire := binary.LittleEndian.Uint32(header[2:6])
	if size < constants.ClientOpcodeSize {
		return 0, nil, fmt.Errorf("invalid client packet size %d", size)
	}

	payload := make([]byte, size-constants.ClientOpcodeSize)
	if _, err := io.ReadFull(r, payload); err != nil {
		return 0, nil, fmt.Errorf("reading client payload: %w", err)
	}
	return wire, payload, nil
}
