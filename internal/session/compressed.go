package session

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/udisondev/wowee/internal/constants"
	"github.com/udisondev/wowee/internal/opcode"
	"github.com/udisondev/wowee/internal/protocol/packet"
	"github.com/udisondev/wowee/internal/protocol/parsers"
)

// maxInflatedUpdate caps the declared size of a compressed update object.
const maxInflatedUpdate = 16 * constants.MaxPacketSize

// InflateUpdateObject unpacks SMSG_COMPRESSED_UPDATE_OBJECT:
// u32 inflated size followed by a zlib stream.
func InflateUpdateObject(r *packet.Reader) ([]byte, error) {
	size, err := r.ReadUint32()
	if err != nil {
		return nil, fmt.Errorf("compressed update size: %w", err)
	}
	if size == 0 || size > maxInflatedUpdate {
		return nil, fmt.Errorf("compressed update size %d: %w", size, parsers.ErrMalformed)
	}
	body, err := r.ReadBytes(r.Remaining())
	if err != nil {
		return nil, fmt.Errorf("compressed update body: %w", err)
	}

	zr, err := zlib.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("compressed update: %w", err)
	}
	defer zr.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(zr, out); err != nil {
		return nil, fmt.Errorf("inflating update object (%d bytes): %w", size, err)
	}
	return out, nil
}

func compressedUpdateHandler(p *parsers.Parsers, emit EventFunc) HandlerFunc {
	return func(ctx context.Context, s *Session, r *packet.Reader) error {
		raw, err := InflateUpdateObject(r)
		if err != nil {
			return err
		}
		u, err := p.ParseUpdateObject(packet.NewReader(raw))
		if err != nil {
			return err
		}
		if emit != nil {
			emit(ctx, s, Event{Opcode: opcode.SMsgUpdateObject, Record: u})
		}
		return nil
	}
}
