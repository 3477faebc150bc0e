// SPDX-License-Identifier: EPL-2.0

package job

import "errors"

var (
	ErrUnknownFormat = errors.New("no decoder for input")
	ErrRateMismatch  = errors.New("input rate differs from the output rate")
	ErrEmptyMix      = errors.New("every input is empty")
)
