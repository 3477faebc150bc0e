// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"

	"github.com/ik5/audmix/pcm"
)

type Source interface {
	// Spec of the byte stream produced by Read.
	Spec() pcm.Spec
	// Read fills dst with whole frames of interleaved samples and returns the
	// number of bytes written. When n == 0 with err == io.EOF, the stream is
	// finished.
	Read(dst []byte) (n int, err error)

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]

	return d, ok
}

// Formats lists the registered keys in no particular order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	out := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		out = append(out, k)
	}

	return out
}
