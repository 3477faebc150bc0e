// SPDX-License-Identifier: EPL-2.0

package infrastructure

import (
	"strings"

	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// FxLogger routes Fx lifecycle events to zap. Successful steps log at debug
// level so that a production job only reports failures and start/stop.
type FxLogger struct {
	logger *zap.Logger
}

// NewFxLogger is meant for fx.WithLogger.
func NewFxLogger(logger *zap.Logger) fxevent.Logger {
	return &FxLogger{logger: logger.Named("fx")}
}

func (l *FxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.OnStartExecuted:
		l.step("OnStart hook", e.FunctionName, e.Err, zap.Duration("runtime", e.Runtime))
	case *fxevent.OnStopExecuted:
		l.step("OnStop hook", e.FunctionName, e.Err, zap.Duration("runtime", e.Runtime))
	case *fxevent.Supplied:
		l.step("supplied", e.TypeName, e.Err)
	case *fxevent.Provided:
		l.step("provided", strings.Join(e.OutputTypeNames, ", "), e.Err)
	case *fxevent.Invoked:
		l.step("invoked", e.FunctionName, e.Err)
	case *fxevent.Stopping:
		l.logger.Info("stopping", zap.String("signal", e.Signal.String()))
	case *fxevent.Stopped:
		l.step("stopped", "", e.Err)
	case *fxevent.RollingBack:
		l.logger.Error("start failed, rolling back", zap.Error(e.StartErr))
	case *fxevent.RolledBack:
		l.step("rolled back", "", e.Err)
	case *fxevent.Started:
		l.step("started", "", e.Err)
	case *fxevent.LoggerInitialized:
		l.step("logger initialized", e.ConstructorName, e.Err)
	}
}

func (l *FxLogger) step(action, subject string, err error, fields ...zap.Field) {
	if subject != "" {
		fields = append(fields, zap.String("subject", subject))
	}

	if err != nil {
		l.logger.Error(action+" failed", append(fields, zap.Error(err))...)

		return
	}

	l.logger.Debug(action, fields...)
}
