package trace

import (
	"log/slog"
	"testing"
)

func TestTime_RunsThunkAndLogs(t *testing.T) {
	h := newRecordHandler(slog.LevelInfo)
	logger := slog.New(h)
	ctx := t.Context()

	ran := false
	Time(ctx, logger, slog.LevelInfo, "bsc.scope.validate", []slog.Attr{slog.String("scope", "source")}, func() {
		ran = true
	})

	if !ran {
		t.Fatal("thunk did not run")
	}
	records := h.records
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Message != "operation timed" {
		t.Errorf("got message %q", records[0].Message)
	}
}

func TestTime_DisabledLevelStillRunsThunk(t *testing.T) {
	h := newRecordHandler(slog.LevelError)
	logger := slog.New(h)
	ctx := t.Context()

	ran := false
	Time(ctx, logger, slog.LevelInfo, "bsc.scope.validate", nil, func() {
		ran = true
	})

	if !ran {
		t.Fatal("thunk must run even when logging is disabled")
	}
	if len(h.records) != 0 {
		t.Fatalf("got %d records, want 0", len(h.records))
	}
}

func TestTime_NilLoggerStillRunsThunk(t *testing.T) {
	ctx := t.Context()
	ran := false
	Time(ctx, nil, slog.LevelInfo, "bsc.scope.validate", nil, func() {
		ran = true
	})
	if !ran {
		t.Fatal("thunk must run with a nil logger")
	}
}
