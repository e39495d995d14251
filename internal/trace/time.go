package trace

import (
	"context"
	"log/slog"
	"time"
)

// Time measures thunk's execution and logs a single "operation timed"
// record at level carrying name, labels, and the elapsed duration. It
// implements the host logger's time(level, labels, thunk) contract
// (spec.md §6). No package of this module calls Time; scope.Validate is
// instrumented with [Begin]/[Op.End] instead.
//
// Time is nil-logger-safe: when logger is nil or level is disabled, thunk
// still runs (timing wrappers must never change behavior), but no log
// record is produced.
func Time(ctx context.Context, logger *slog.Logger, level slog.Level, name string, labels []slog.Attr, thunk func()) {
	if !Enabled(ctx, logger, level) {
		thunk()
		return
	}

	start := time.Now()
	thunk()
	elapsed := time.Since(start)

	attrs := make([]slog.Attr, 0, len(labels)+3)
	attrs = append(attrs, slog.String("op", name))
	if reqID, ok := RequestIDFrom(ctx); ok {
		attrs = append(attrs, slog.String("request_id", reqID))
	}
	attrs = append(attrs, slog.Duration("duration", elapsed))
	attrs = append(attrs, labels...)

	logger.LogAttrs(ctx, level, "operation timed", attrs...)
}
