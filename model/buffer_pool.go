package model

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// BufferPool recycles next-generation cell buffers between ticks
type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				return bitset.New(0)
			},
		},
	}
}

// Get retrieves a buffer of exactly length bits. Its contents are unspecified;
// callers overwrite every bit.
func (p *BufferPool) Get(length uint) *bitset.BitSet {
	b := p.pool.Get().(*bitset.BitSet)
	if b.Len() != length {
		return bitset.New(length)
	}
	return b
}

// Put returns a buffer to the pool
func (p *BufferPool) Put(b *bitset.BitSet) {
	if p == nil || b == nil {
		return
	}
	p.pool.Put(b)
}
