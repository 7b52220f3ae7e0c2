// Package observers provides observers for monitoring state machine events
package observers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/anggasct/fsm"
)

// LoggingObserver logs state machine events through slog
type LoggingObserver struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLoggingObserver creates a logging observer. Transitions are logged at
// level, rejections one level above it and errors at slog.LevelError.
func NewLoggingObserver(logger *slog.Logger, level slog.Level) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{
		logger: logger,
		level:  level,
	}
}

// NewDefaultLoggingObserver creates a logging observer on slog.Default at info level
func NewDefaultLoggingObserver() *LoggingObserver {
	return NewLoggingObserver(slog.Default(), slog.LevelInfo)
}

// OnTransition logs transitions
func (o *LoggingObserver) OnTransition(e *fsm.Event) {
	o.logger.Log(e.Context(), o.level, "transition",
		"machine", machineID(e),
		"event", e.Name,
		"from", string(e.From),
		"to", string(e.To),
		"id", e.ID,
	)
}

// OnRejected logs events refused by a guard or a before hook
func (o *LoggingObserver) OnRejected(e *fsm.Event, err error) {
	reason := "hook"
	if errors.Is(err, fsm.ErrTransitionGuard) {
		reason = "guard"
	}
	o.logger.Log(e.Context(), o.level+4, "event rejected",
		"machine", machineID(e),
		"event", e.Name,
		"state", string(e.From),
		"reason", reason,
		"error", err,
	)
}

// OnError logs errors
func (o *LoggingObserver) OnError(e *fsm.Event, err error) {
	ctx := context.Background()
	if e != nil {
		ctx = e.Context()
	}
	o.logger.Log(ctx, slog.LevelError, "state machine error", "error", err)
}

func machineID(e *fsm.Event) string {
	if e.Machine == nil {
		return ""
	}
	return e.Machine.ID()
}
