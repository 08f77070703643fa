package recipes

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentedRepository is a Repository that records a span and metrics for every operation.
type InstrumentedRepository struct {
	repo   *Repository
	tracer trace.Tracer

	operations metric.Int64Counter
	failures   metric.Int64Counter
	duration   metric.Float64Histogram
	stored     metric.Int64Gauge
}

// NewInstrumentedRepository wraps repo with the given tracer and meter.
func NewInstrumentedRepository(repo *Repository, tracer trace.Tracer, meter metric.Meter) *InstrumentedRepository {
	operations, _ := meter.Int64Counter("recipe_store_operations_total",
		metric.WithDescription("Total number of recipe store operations"))
	failures, _ := meter.Int64Counter("recipe_store_failures_total",
		metric.WithDescription("Total number of recipe store operations that returned an error"))
	duration, _ := meter.Float64Histogram("recipe_store_operation_duration_seconds",
		metric.WithDescription("Duration of recipe store operations in seconds"),
		metric.WithUnit("s"))
	stored, _ := meter.Int64Gauge("recipes_stored_count",
		metric.WithDescription("Number of recipes in the collection at the last read"))

	return &InstrumentedRepository{
		repo:       repo,
		tracer:     tracer,
		operations: operations,
		failures:   failures,
		duration:   duration,
		stored:     stored,
	}
}

func (r *InstrumentedRepository) GetAllRecipes(ctx context.Context) ([]Recipe, error) {
	var list []Recipe
	err := r.observe(ctx, "get_all", func(ctx context.Context, span trace.Span) error {
		var err error
		list, err = r.repo.GetAllRecipes(ctx)
		if err == nil {
			r.stored.Record(ctx, int64(len(list)))
			span.SetAttributes(attribute.Int("recipes.count", len(list)))
		}
		return err
	})
	return list, err
}

func (r *InstrumentedRepository) SaveRecipe(ctx context.Context, recipe Recipe) error {
	return r.observe(ctx, "save", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(
			attribute.String("recipe.id", recipe.ID),
			attribute.Int("recipe.ingredients", len(recipe.Ingredients)),
			attribute.Float64("recipe.total_calories", recipe.TotalCalories),
		)
		return r.repo.SaveRecipe(ctx, recipe)
	})
}

func (r *InstrumentedRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.observe(ctx, "delete", func(ctx context.Context, span trace.Span) error {
		span.SetAttributes(attribute.String("recipe.id", id))
		return r.repo.DeleteRecipe(ctx, id)
	})
}

func (r *InstrumentedRepository) observe(ctx context.Context, op string, fn func(context.Context, trace.Span) error) error {
	ctx, span := r.tracer.Start(ctx, "RecipeRepository."+op, trace.WithAttributes(
		attribute.String("store.key", r.repo.Key()),
	))
	defer span.End()

	opAttr := metric.WithAttributes(attribute.String("operation", op))
	r.operations.Add(ctx, 1, opAttr)

	start := time.Now()
	err := fn(ctx, span)
	r.duration.Record(ctx, time.Since(start).Seconds(), opAttr)

	if err != nil {
		r.failures.Add(ctx, 1, opAttr)
		span.SetStatus(codes.Error, op+" failed")
		span.RecordError(err)
	}
	return err
}
