// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"errors"

	"github.com/ik5/audmix/formats/internal/pcmint"
)

var (
	// ErrNotAiffFile indicates the file is not a valid AIFF file
	ErrNotAiffFile = errors.New("not an AIFF file")

	// ErrUnsupportedBitDepth indicates the sample size has no engine format
	ErrUnsupportedBitDepth = errors.New("only 16, 24 and 32-bit AIFF is supported")

	// ErrUnsupportedAiffLayout indicates an unsupported AIFF layout
	ErrUnsupportedAiffLayout = errors.New("unsupported AIFF layout")

	ErrUnsupportedFormat = errors.New("sample format cannot be stored in AIFF")
	ErrEncoderClosed     = pcmint.ErrClosed
)
