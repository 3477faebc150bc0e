// SPDX-License-Identifier: EPL-2.0

package memblock

import (
	"fmt"
	"sync/atomic"
)

// Block is a reference-counted buffer.
type Block struct {
	pool     *Pool
	slot     *[]byte
	data     []byte
	readOnly bool

	refs     atomic.Int32
	acquired atomic.Int32
}

// NewUser wraps caller memory. The block is never returned to a pool; a
// read-only block is always copied by MakeWritable.
func NewUser(data []byte, readOnly bool) *Block {
	b := &Block{data: data, readOnly: readOnly}
	b.refs.Store(1)

	return b
}

func (b *Block) Len() int { return len(b.data) }

func (b *Block) IsReadOnly() bool { return b.readOnly }

func (b *Block) RefCount() int { return int(b.refs.Load()) }

// Ref adds a reference and returns b.
func (b *Block) Ref() *Block {
	if b.refs.Add(1) <= 1 {
		panic(fmt.Errorf("%w: ref", ErrDeadBlock))
	}

	return b
}

// Unref drops a reference. The last one gives pooled memory back.
func (b *Block) Unref() {
	n := b.refs.Add(-1)

	switch {
	case n < 0:
		panic(fmt.Errorf("%w: unref", ErrDeadBlock))
	case n == 0 && b.pool != nil:
		b.pool.free(b)
	}
}

// Acquire maps the block for access. Every Acquire needs a Release.
func (b *Block) Acquire() []byte {
	if b.refs.Load() <= 0 {
		panic(fmt.Errorf("%w: acquire", ErrDeadBlock))
	}

	b.acquired.Add(1)

	return b.data
}

func (b *Block) Release() {
	if b.acquired.Add(-1) < 0 {
		panic(ErrBadRelease)
	}
}

// Acquired reports how many Acquire calls are still outstanding.
func (b *Block) Acquired() int { return int(b.acquired.Load()) }
