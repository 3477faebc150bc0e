// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrInvalidFormat   = errors.New("invalid sample format")
	ErrUnknownFormat   = errors.New("unknown sample format name")
	ErrInvalidChannels = errors.New("invalid channel count")
	ErrInvalidRate     = errors.New("invalid sample rate")
	ErrUnaligned       = errors.New("buffer length is not a multiple of the frame size")
	ErrShortBuffer     = errors.New("destination buffer too short")
)
