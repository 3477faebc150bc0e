// SPDX-License-Identifier: EPL-2.0

package volume

import "errors"

var ErrChannelMismatch = errors.New("channel volume lengths differ")
