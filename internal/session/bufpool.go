package session

import (
	"sync"

	"github.com/udisondev/wowee/internal/constants"
)

// bufPool recycles packet buffers between reads and writes of one process.
// Buffers larger than a maximal frame are dropped instead of pooled.
type bufPool struct {
	pool sync.Pool
}

func newBufPool(defaultCap int) *bufPool {
	p := &bufPool{}
	p.pool.New = func() any {
		return make([]byte, 0, defaultCap)
	}
	return p
}

// get returns a zeroed slice of length size.
func (p *bufPool) get(size int) []byte {
	b := p.pool.Get().([]byte)
	if cap(b) < size {
		p.pool.Put(b)
		return make([]byte, size)
	}
	b = b[:size]
	clear(b)
	return b
}

// frame returns a buffer with room for the client header followed by payloadLen bytes.
func (p *bufPool) frame(payloadLen int) []byte {
	return p.get(constants.ClientHeaderSize + payloadLen)
}

func (p *bufPool) put(b []byte) {
	if b == nil || cap(b) > constants.ClientHeaderSize+constants.MaxPacketSize {
		return
	}
	p.pool.Put(b[:0])
}

var (
	readPool  = newBufPool(constants.DefaultReadBufSize)
	writePool = newBufPool(constants.DefaultSendBufSize)
)
