// SPDX-License-Identifier: EPL-2.0

package memblock

import "fmt"

// Chunk is a view of Length bytes starting at Index in Block. It does not own
// a reference of its own; whoever holds the chunk holds one on the block.
type Chunk struct {
	Block  *Block
	Index  int
	Length int
}

// NewChunk covers the whole block.
func NewChunk(b *Block) Chunk {
	return Chunk{Block: b, Index: 0, Length: b.Len()}
}

func (c Chunk) Valid() bool {
	return c.Block != nil && c.Index >= 0 && c.Length >= 0 && c.Index+c.Length <= c.Block.Len()
}

// Bytes is the viewed range. It must not be written to unless the chunk was
// obtained as a Writable.
func (c Chunk) Bytes() []byte {
	if !c.Valid() {
		if c.Block == nil && c.Index == 0 && c.Length == 0 {
			return nil
		}

		panic(fmt.Errorf("%w: [%d:+%d]", ErrOutOfRange, c.Index, c.Length))
	}

	return c.Block.data[c.Index : c.Index+c.Length : c.Index+c.Length]
}

// Slice narrows the view relative to the current range.
func (c Chunk) Slice(offset, length int) Chunk {
	if offset < 0 || length < 0 || offset+length > c.Length {
		panic(fmt.Errorf("%w: [%d:+%d] of %d bytes", ErrOutOfRange, offset, length, c.Length))
	}

	return Chunk{Block: c.Block, Index: c.Index + offset, Length: length}
}

// Exclusive reports whether the chunk may be written in place.
func (c Chunk) Exclusive() bool {
	return c.Block != nil && !c.Block.readOnly && c.Block.RefCount() == 1
}

// MakeWritable returns a writable view of the same bytes. When the block is
// shared or read-only the range is copied into a new block from pool and the
// caller's reference to the old block is dropped.
func (c Chunk) MakeWritable(pool *Pool) Writable {
	if c.Exclusive() {
		return Writable{c: c}
	}

	w := pool.AllocWritable(c.Length)
	copy(w.Bytes(), c.Bytes())

	if c.Block != nil {
		c.Block.Unref()
	}

	return w
}

// Writable is a chunk whose block is exclusively held by its owner.
type Writable struct {
	c Chunk
}

func (w Writable) Bytes() []byte { return w.c.Bytes() }

func (w Writable) Len() int { return w.c.Length }

// Chunk gives up write access and returns the plain view.
func (w Writable) Chunk() Chunk { return w.c }
