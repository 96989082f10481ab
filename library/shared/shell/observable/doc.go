// Package observable provides wrappers that instrument command and query handlers
// with metrics, tracing and logging while the handlers themselves stay free of observability code.
//
// Wrapping happens explicitly at wiring time:
//
//	coreHandler := borrowbook.NewCommandHandler(store)
//
//	handler, err := observable.NewCommandWrapper[borrowbook.Command](
//		coreHandler,
//		observable.WithCommandMetrics[borrowbook.Command](metricsCollector),
//		observable.WithCommandTracing[borrowbook.Command](tracingCollector),
//		observable.WithCommandContextualLogging[borrowbook.Command](contextualLogger),
//	)
//
//	result := handler.Handle(ctx, borrowbook.BuildCommand("123456", bookID, time.Now()))
//
// A CommandWrapper reads the outcome from the returned core.Result: completed commands are recorded
// with status "success", business rejections with status "rejected" plus a rejection counter per outcome,
// and failed collaborators with "error", "canceled" or "timeout" depending on the cause.
// A QueryWrapper derives the status from the returned error.
//
// For unit tests focused on business logic, use the handlers without a wrapper.
package observable
