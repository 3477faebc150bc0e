// SPDX-License-Identifier: EPL-2.0

package memblock

import (
	"sync"
	"sync/atomic"
)

const DefaultSlotSize = 64 * 1024

// Pool hands out blocks. Requests up to the slot size reuse fixed size
// slots, larger ones are allocated on their own.
type Pool struct {
	slotSize int
	slots    sync.Pool

	allocated      atomic.Int64
	allocatedBytes atomic.Int64
	total          atomic.Int64
	totalBytes     atomic.Int64
}

// Stats is a snapshot of pool usage. Allocated counts live blocks, Total
// counts every block ever handed out.
type Stats struct {
	Allocated      int64
	AllocatedBytes int64
	Total          int64
	TotalBytes     int64
	SlotSize       int
}

type Option func(*Pool)

// WithSlotSize changes the size of pooled slots.
func WithSlotSize(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.slotSize = n
		}
	}
}

func NewPool(opts ...Option) *Pool {
	p := &Pool{slotSize: DefaultSlotSize}
	for _, opt := range opts {
		opt(p)
	}

	p.slots.New = func() any {
		buf := make([]byte, p.slotSize)

		return &buf
	}

	return p
}

// Alloc returns a zeroed block of size bytes holding one reference.
func (p *Pool) Alloc(size int) *Block {
	if size < 0 {
		size = 0
	}

	b := &Block{pool: p}

	if size <= p.slotSize {
		slot := p.slots.Get().(*[]byte)
		b.slot = slot
		b.data = (*slot)[:size]
		clear(b.data)
	} else {
		b.data = make([]byte, size)
	}

	b.refs.Store(1)

	p.allocated.Add(1)
	p.allocatedBytes.Add(int64(size))
	p.total.Add(1)
	p.totalBytes.Add(int64(size))

	return b
}

// AllocWritable allocates a fresh block and returns it as a writable chunk.
func (p *Pool) AllocWritable(size int) Writable {
	return Writable{c: NewChunk(p.Alloc(size))}
}

func (p *Pool) Stats() Stats {
	return Stats{
		Allocated:      p.allocated.Load(),
		AllocatedBytes: p.allocatedBytes.Load(),
		Total:          p.total.Load(),
		TotalBytes:     p.totalBytes.Load(),
		SlotSize:       p.slotSize,
	}
}

func (p *Pool) free(b *Block) {
	p.allocated.Add(-1)
	p.allocatedBytes.Add(-int64(len(b.data)))

	if b.slot != nil {
		p.slots.Put(b.slot)
	}

	b.slot, b.data = nil, nil
}
