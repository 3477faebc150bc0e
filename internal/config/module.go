// SPDX-License-Identifier: EPL-2.0

package config

import "go.uber.org/fx"

// Module provides *Config loaded from the supplied file path string.
var Module = fx.Module("config",
	fx.Provide(Load),
)
