// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of the frame size")
	ErrChannelMismatch   = errors.New("volume channel count does not match the sample spec")
	ErrSpecMismatch      = errors.New("mix input spec differs from the destination spec")
	ErrInvalidChannelMap = errors.New("invalid channel map")
	ErrUnalignedStream   = errors.New("stream ended inside a frame")
)
