// SPDX-License-Identifier: EPL-2.0

package job

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the Runner and runs the configured job once the
// application starts. The application shuts down when the job ends, with
// exit code 1 on failure.
var Module = fx.Module("job",
	fx.Provide(NewRunner),
	fx.Invoke(registerLifecycle),
)

type lifecycleParams struct {
	fx.In
	LC         fx.Lifecycle
	Shutdowner fx.Shutdowner
	Runner     *Runner
	Logger     *zap.Logger
}

func registerLifecycle(params lifecycleParams) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	params.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)

				code := 0
				if _, err := params.Runner.Run(ctx); err != nil {
					params.Logger.Error("mix failed", zap.Error(err))
					code = 1
				}

				if err := params.Shutdowner.Shutdown(fx.ExitCode(code)); err != nil {
					params.Logger.Error("failed to request shutdown", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()

			select {
			case <-done:
			case <-stopCtx.Done():
				return stopCtx.Err()
			}

			params.Runner.Close()

			return nil
		},
	})
}
