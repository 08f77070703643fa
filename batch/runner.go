// Package batch runs scripted sequences of tool calls against the recipe
// tools, logging every step.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"recipebuilder"
	"recipebuilder/tools"
)

// Runner executes tool calls one after another and stops at the first failure.
type Runner struct {
	toolProvider recipebuilder.ToolProvider
	maxSteps     int
	logger       recipebuilder.EventLogger
	tracer       trace.Tracer
	now          func() time.Time
}

type Option func(*Runner)

// WithTracer records a span per run and per step.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Runner) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// NewRunner initializes a runner. maxSteps <= 0 means no limit; log may be nil.
func NewRunner(tp recipebuilder.ToolProvider, maxSteps int, log recipebuilder.EventLogger, opts ...Option) *Runner {
	r := &Runner{
		toolProvider: tp,
		maxSteps:     maxSteps,
		logger:       log,
		tracer:       noop.NewTracerProvider().Tracer(""),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result is the outcome of a run. Output holds the last successful step's output.
type Result struct {
	Steps  []recipebuilder.ToolCallLog `json:"steps"`
	Output map[string]any              `json:"output,omitempty"`
}

// Run executes calls in order. Steps completed before a failure are kept in
// the returned result alongside the error.
func (r *Runner) Run(ctx context.Context, calls []tools.Call) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "batch.run",
		trace.WithAttributes(attribute.Int("batch.calls", len(calls))))
	defer span.End()

	slog.Info("BATCH: Starting run", "calls", len(calls), "max_steps", r.maxSteps)

	var result Result
	if r.maxSteps > 0 && len(calls) > r.maxSteps {
		err := fmt.Errorf("script has %d calls, limit is %d", len(calls), r.maxSteps)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	for i, call := range calls {
		step, err := r.step(ctx, i+1, call)
		result.Steps = append(result.Steps, step)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return result, err
		}
		result.Output = step.Output
	}

	slog.Info("BATCH: Run complete", "steps", len(result.Steps))
	span.SetStatus(codes.Ok, "")
	return result, nil
}

func (r *Runner) step(ctx context.Context, n int, call tools.Call) (recipebuilder.ToolCallLog, error) {
	ctx, span := r.tracer.Start(ctx, "batch.step", trace.WithAttributes(
		attribute.Int("batch.step", n),
		attribute.String("tool.name", call.Name),
	))
	defer span.End()

	slog.Info("BATCH: Handling tool call", "name", call.Name, "step", n)
	toolLog := recipebuilder.ToolCallLog{Step: n, Name: call.Name, Input: call.Input}

	tool, err := r.toolProvider.GetTool(call.Name)
	if err != nil {
		toolLog.Error = err.Error()
		r.logStep(toolLog)
		span.RecordError(err)
		return toolLog, fmt.Errorf("failed to get tool %q: %w", call.Name, err)
	}

	input := call.Input
	if input == nil {
		input = map[string]any{}
	}
	output, err := tool.Run(ctx, input)
	if err != nil {
		toolLog.Error = err.Error()
		r.logStep(toolLog)
		span.RecordError(err)
		return toolLog, fmt.Errorf("failed to run tool %q: %w", call.Name, err)
	}

	toolLog.Output = output
	r.logStep(toolLog)
	return toolLog, nil
}

// logStep logs a step using the configured logger, handling errors gracefully
func (r *Runner) logStep(step recipebuilder.ToolCallLog) {
	if r.logger == nil {
		return
	}
	event := recipebuilder.RecipeEvent{
		Action:    recipebuilder.ActionToolCall,
		Timestamp: r.now(),
		Tool:      &step,
		Error:     step.Error,
	}
	if step.Name == "recipe_delete" && step.Error == "" {
		event.Action = recipebuilder.ActionDeleted
		if id, ok := step.Input["id"].(string); ok {
			event.RecipeID = id
		}
	}
	if err := r.logger.LogEvent(event); err != nil {
		slog.Error("BATCH: Failed to log step", "error", err, "step", step.Step)
	}
}
