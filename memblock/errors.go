// SPDX-License-Identifier: EPL-2.0

package memblock

import "errors"

var (
	ErrDeadBlock  = errors.New("block has no references left")
	ErrBadRelease = errors.New("block released more times than acquired")
	ErrOutOfRange = errors.New("chunk range outside of block")
)
