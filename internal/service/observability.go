package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent is the telemetry record emitted once per service use case:
// suggest-assignee, recompute-timeline, generate-from-gaps.
type UseCaseEvent struct {
	Name     string
	Duration time.Duration
	Success  bool
	Err      error
	// Fields carries use-case specifics, e.g. task counts for a bulk run.
	Fields map[string]any
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver emits each event as one structured slog line on w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &logUseCaseObserver{logger: slog.New(handler)}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []any{
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	}
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}

	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "use_case", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "use_case", attrs...)
}

// useCaseObserverOrNoop picks the first non-nil observer from a variadic
// constructor argument.
func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
