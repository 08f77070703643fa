package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/aws/aws-lambda-go/lambda"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"recipebuilder"
	"recipebuilder/batch"
	"recipebuilder/recipes"
	"recipebuilder/tools"
)

// Params selects either a single tool call (Tool, Input) or a batch of calls.
type Params struct {
	Tool      string         `json:"tool"`
	Input     map[string]any `json:"input"`
	ToolCalls []tools.Call   `json:"tool_calls"`
}

type Results struct {
	Output any `json:"output"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		cfg, err := recipebuilder.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}
		if cfg.Store.Backend != recipebuilder.BackendS3 {
			slog.Info("SETUP: Forcing S3 store backend", "configured", cfg.Store.Backend)
			cfg.Store.Backend = recipebuilder.BackendS3
		}

		var tracer trace.Tracer = noop.NewTracerProvider().Tracer(recipebuilder.TracerNameLambda)
		kv, err := recipebuilder.NewStore(ctx, cfg.Store)
		if err != nil {
			slog.Error("SETUP: Failed to create S3 store", "error", err)
			return Results{}, err
		}
		store := recipebuilder.NewRecipeStore(kv, cfg.Store, nil, nil)

		if cfg.OtelEnabled {
			tracerProvider, meterProvider, otelShutdown, err := recipebuilder.InitOtel(ctx)
			if err != nil {
				slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
				return Results{}, err
			}
			defer func() {
				if err := otelShutdown(ctx); err != nil {
					slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
				}
			}()
			tracer = tracerProvider.Tracer(recipebuilder.TracerNameLambda)
			store = recipebuilder.NewRecipeStore(kv, cfg.Store,
				tracerProvider.Tracer(recipebuilder.TracerNameRepository),
				meterProvider.Meter(recipebuilder.TracerNameRepository))
		}

		catalog, err := recipebuilder.LoadCatalog(ctx, cfg.Catalog, cfg.Store)
		if err != nil {
			slog.Error("SETUP: Failed to load catalog", "error", err)
			return Results{}, err
		}
		slog.Info("SETUP: Catalog loaded", "ingredients_count", len(catalog))

		events := recipebuilder.NewStdoutEventLogger()
		notifier := recipebuilder.NewNotifier(cfg.Notify, func() []recipes.Ingredient { return catalog }, events, nil)
		registry, err := tools.NewRegistry(store, catalog, notifier)
		if err != nil {
			slog.Error("SETUP: Failed to create tool registry", "error", err)
			return Results{}, err
		}

		runner := batch.NewRunner(registry, cfg.Batch.MaxSteps, events, batch.WithTracer(tracer))
		return dispatch(ctx, registry, runner, tracer, params)
	}

	lambda.Start(fn)
}

// dispatch runs params as a batch when it carries tool calls, otherwise as a
// single tool call. A failed batch still returns the steps it completed.
func dispatch(ctx context.Context, registry *tools.Registry, runner *batch.Runner, tracer trace.Tracer, params Params) (Results, error) {
	if len(params.ToolCalls) > 0 {
		result, err := runner.Run(ctx, params.ToolCalls)
		if err != nil {
			slog.Error("RESULT: Error handling batch", "steps", len(result.Steps), "error", err)
			return Results{Output: result}, fmt.Errorf("batch stopped after %d of %d calls: %w", len(result.Steps), len(params.ToolCalls), err)
		}
		return Results{Output: result}, nil
	}

	ctx, span := tracer.Start(ctx, "lambda.tool_call",
		trace.WithAttributes(attribute.String("tool.name", params.Tool)))
	defer span.End()

	output, err := runTool(ctx, registry, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Error("RESULT: Error handling tool call", "tool", params.Tool, "error", err)
		return Results{}, err
	}

	return Results{Output: output}, nil
}

func runTool(ctx context.Context, registry *tools.Registry, params Params) (map[string]any, error) {
	if params.Tool == "" {
		return nil, fmt.Errorf("missing tool name")
	}
	tool, err := registry.GetTool(params.Tool)
	if err != nil {
		return nil, err
	}
	input := params.Input
	if input == nil {
		input = map[string]any{}
	}
	slog.Info("TOOL: Running", "tool", tool.Name())
	return tool.Run(ctx, input)
}
