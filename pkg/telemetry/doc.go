// Package telemetry provides structured logging for OpBench.
//
// The package wraps zerolog with component-aware child loggers and context
// propagation. It also supplies the live console sink that pkg/oplog mirrors
// buffered operation entries to, so a user watching the terminal sees every
// entry the moment it is logged while the durable artifact is still being
// accumulated in memory.
//
// Initialize logging at application startup:
//
//	logger, err := telemetry.NewLogger(telemetry.LoggingConfig{
//	    Level:  "debug",
//	    Format: "console",
//	    Output: "stderr",
//	})
//
// Create component loggers and propagate through context:
//
//	opLog := logger.NewComponentLogger("operation")
//	ctx = opLog.WithContext(ctx)
//	telemetry.FromContext(ctx).Info("starting")
package telemetry
