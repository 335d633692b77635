package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AntonStoeckl/library-catalog-go/catalogstore/sqlengine"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell/config"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell/observable"
)

const shutdownTimeout = 5 * time.Second

// app holds everything a command needs. It is opened once per invocation.
type app struct {
	configPath string
	output     string

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	// newLogger builds the zap logger from the log config, tests replace it.
	newLogger func(cfg config.LogConfig) (*zap.Logger, error)

	cfg         config.Config
	logger      *zap.Logger
	storeLogger *shell.ZapLogger
	telemetry   *telemetry
	engine      *sqlengine.Engine
	closeEngine func()
	session     *shell.Session
}

func newApp(stdout, stderr io.Writer, now func() time.Time) *app {
	return &app{
		output:    outputTable,
		stdout:    stdout,
		stderr:    stderr,
		now:       now,
		newLogger: newZapLogger,
		session:   shell.NewSession(0),
	}
}

func newZapLogger(cfg config.LogConfig) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	if cfg.Development {
		zapConfig = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: log level %q", config.ErrInvalidConfig, cfg.Level)
		}

		zapConfig.Level = zap.NewAtomicLevelAt(level)
	}

	return zapConfig.Build()
}

// open loads the config and connects logging, telemetry and the store.
func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	a.cfg = cfg

	if a.logger, err = a.newLogger(cfg.Log); err != nil {
		return err
	}

	a.storeLogger = shell.NewZapLogger(a.logger)

	if a.telemetry, err = newTelemetry(ctx, cfg.Telemetry, a.stderr); err != nil {
		return err
	}

	a.engine, a.closeEngine, err = config.OpenEngine(ctx, cfg.Database,
		sqlengine.WithContextualLogger(a.storeLogger),
		sqlengine.WithMetrics(a.telemetry.metrics),
		sqlengine.WithTracing(a.telemetry.tracing),
	)
	if err != nil {
		return err
	}

	a.logger.Debug("librarian opened", zap.String("driver", cfg.Database.Driver), zap.String("dialect", a.engine.Dialect()))

	return nil
}

// close releases the store and flushes telemetry and logs. It is safe to call on a partially opened app.
func (a *app) close() {
	if a.closeEngine != nil {
		a.closeEngine()
		a.closeEngine = nil
	}

	if a.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.telemetry.shutdown(ctx); err != nil && a.logger != nil {
			a.logger.Warn("telemetry shutdown failed", zap.Error(err))
		}
		cancel()
		a.telemetry = nil
	}

	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// requestContext attaches the operator principal and the session of this invocation.
func (a *app) requestContext(ctx context.Context) context.Context {
	if principal, ok := a.cfg.Principal(); ok {
		ctx = shell.WithPrincipal(ctx, principal)
	}

	return shell.WithSession(ctx, a.session)
}

func observeCommand[C shell.Command](a *app, handler shell.CoreCommandHandler[C]) (shell.CoreCommandHandler[C], error) {
	wrapper, err := observable.NewCommandWrapper(handler,
		observable.WithCommandMetrics[C](a.telemetry.metrics),
		observable.WithCommandTracing[C](a.telemetry.tracing),
		observable.WithCommandContextualLogging[C](a.storeLogger),
	)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

func observeQuery[Q shell.Query, R any](a *app, handler shell.QueryHandler[Q, R]) (shell.QueryHandler[Q, R], error) {
	wrapper, err := observable.NewQueryWrapper(handler,
		observable.WithQueryMetrics[Q, R](a.telemetry.metrics),
		observable.WithQueryTracing[Q, R](a.telemetry.tracing),
		observable.WithQueryContextualLogging[Q, R](a.storeLogger),
	)
	if err != nil {
		return nil, err
	}

	return wrapper, nil
}

// runQuery wraps the handler and runs the query in a request context.
func runQuery[Q shell.Query, R any](ctx context.Context, a *app, handler shell.QueryHandler[Q, R], query Q) (R, error) {
	observed, err := observeQuery(a, handler)
	if err != nil {
		var zero R
		return zero, err
	}

	return observed.Handle(a.requestContext(ctx), query)
}

// runCommand wraps the handler, runs the command in a request context and reports the outcome.
func runCommand[C shell.Command](ctx context.Context, a *app, handler shell.CoreCommandHandler[C], command C) error {
	observed, err := observeCommand(a, handler)
	if err != nil {
		return err
	}

	result, err := observed.Handle(a.requestContext(ctx), command)
	if err != nil {
		return err
	}

	return a.renderCommandResult(command.CommandType(), result)
}
