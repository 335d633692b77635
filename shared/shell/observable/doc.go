// Package observable wraps command and query handlers with metrics, tracing and logging,
// so that the handlers themselves contain only their workflow.
//
// Wrappers are applied at wiring time:
//
//	coreHandler, err := lendbookcopy.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[lendbookcopy.Command](metricsCollector),
//		observable.WithCommandTracing[lendbookcopy.Command](tracingCollector),
//		observable.WithCommandContextualLogging[lendbookcopy.Command](contextualLogger),
//	)
//
//	result, err := handler.Handle(ctx, command)
//
// Tests of the workflow use the unwrapped handlers.
package observable
