package recipebuilder

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"recipebuilder/builder"
	"recipebuilder/recipes"
	"recipebuilder/slack"
	"recipebuilder/storage"
)

const (
	BackendFile   = "file"
	BackendS3     = "s3"
	BackendMemory = "memory"
)

// NewStore builds the key-value backend selected by cfg.Backend.
func NewStore(ctx context.Context, cfg StoreConfig) (storage.Store, error) {
	switch cfg.Backend {
	case BackendFile, "":
		return storage.NewFileStore(cfg.Dir), nil
	case BackendMemory:
		return storage.NewTestStore(), nil
	case BackendS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("missing S3 config: RECIPE_STORE_S3_BUCKET must be set")
		}
		client, err := newS3Client(ctx)
		if err != nil {
			return nil, err
		}
		return storage.NewS3Store(client, cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

func newS3Client(ctx context.Context) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return s3.NewFromConfig(awsCfg), nil
}

// NewRecipeStore returns the repository over store, instrumented when a
// tracer and meter are given.
func NewRecipeStore(store storage.Store, cfg StoreConfig, tracer trace.Tracer, meter metric.Meter) builder.Store {
	repo := recipes.NewRepository(store, cfg.Key)
	if tracer == nil || meter == nil {
		return repo
	}
	return recipes.NewInstrumentedRepository(repo, tracer, meter)
}

// LoadCatalog reads the configured catalog, falling back to the sample
// catalog when neither a path nor an S3 key is set.
func LoadCatalog(ctx context.Context, cfg CatalogConfig, store StoreConfig) ([]recipes.Ingredient, error) {
	switch {
	case cfg.Path != "":
		return recipes.LoadCatalog(ctx, storage.NewFileCatalogState(cfg.Path), recipes.FormatFromPath(cfg.Path))
	case cfg.S3Key != "":
		if store.S3Bucket == "" {
			return nil, fmt.Errorf("missing S3 config: RECIPE_STORE_S3_BUCKET must be set to read CATALOG_S3_KEY")
		}
		client, err := newS3Client(ctx)
		if err != nil {
			return nil, err
		}
		state := storage.NewS3CatalogState(client, store.S3Bucket, cfg.S3Key)
		return recipes.LoadCatalog(ctx, state, recipes.FormatFromPath(cfg.S3Key))
	default:
		return recipes.SampleIngredients(), nil
	}
}

// NewNotifier assembles the recipe-created sinks from cfg. The slog
// notifier is always present; Slack and the event logger are added when
// configured. catalog is read at notification time, so it may follow a
// catalog that changes while running.
func NewNotifier(cfg NotifyConfig, catalog func() []recipes.Ingredient, events EventLogger, httpClient HTTPClient) builder.Notifier {
	notifiers := builder.Notifiers{LogNotifier{}}
	if events != nil {
		notifiers = append(notifiers, NewEventNotifier(events))
	}
	if cfg.SlackWebhookURL != "" {
		if httpClient == nil {
			httpClient = http.DefaultClient
		}
		var client SlackClient = slack.NewClient(cfg.SlackWebhookURL, httpClient)
		notifiers = append(notifiers, slack.NewNotifier(client, cfg.SlackChannel, catalog))
	}
	return notifiers
}
