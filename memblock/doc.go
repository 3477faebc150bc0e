// SPDX-License-Identifier: EPL-2.0

// Package memblock supplies the reference-counted buffers the mixer works on.
//
// A Block owns memory, either a slot from a Pool or caller memory wrapped by
// NewUser. A Chunk is a borrowed byte range of a Block. Code that wants to
// mutate a chunk in place must first turn it into a Writable:
//
//	w := chunk.MakeWritable(pool) // copies when shared or read-only
//	audio.ApplyVolumeChunk(w, spec, vol)
//
// Writable values are only produced by MakeWritable and Pool.AllocWritable,
// so exclusive ownership is checked before any in-place write.
//
// Blocks are safe to reference from several goroutines. The bytes they hold
// are not synchronized; a single writer per block is the caller's job.
package memblock
