// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/audmix/memblock"
)

const readChunk = 16 * 1024

// MaxEmptyReads is how many consecutive (0, nil) reads a drain loop accepts
// before giving up with io.ErrNoProgress.
const MaxEmptyReads = 100

// ReadAll drains src into a single block from pool. The returned chunk holds
// the only reference to that block.
func ReadAll(pool *memblock.Pool, src Source) (memblock.Chunk, error) {
	spec := src.Spec()
	if err := spec.Validate(); err != nil {
		return memblock.Chunk{}, fmt.Errorf("read all: %w", err)
	}

	fs := spec.FrameSize()
	buf := make([]byte, max(readChunk/fs, 1)*fs)

	var data []byte

	for empty := 0; ; {
		n, err := src.Read(buf)
		if n > 0 {
			data = append(data, buf[:n]...)
			empty = 0
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return memblock.Chunk{}, fmt.Errorf("read all: %w", err)
		}

		if n == 0 {
			empty++
			if empty >= MaxEmptyReads {
				return memblock.Chunk{}, fmt.Errorf("read all: %w", io.ErrNoProgress)
			}
		}
	}

	if len(data)%fs != 0 {
		return memblock.Chunk{}, fmt.Errorf("%w: %d bytes with %d byte frames", ErrUnalignedStream, len(data), fs)
	}

	w := pool.AllocWritable(len(data))
	copy(w.Bytes(), data)

	return w.Chunk(), nil
}
