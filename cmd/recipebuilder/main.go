package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"recipebuilder"
	"recipebuilder/builder"
	"recipebuilder/catalog"
)

// app carries what every command needs once setup has run.
type app struct {
	cfg      recipebuilder.Config
	store    builder.Store
	catalog  *catalog.Live
	notifier builder.Notifier
	events   recipebuilder.EventLogger
	tracer   trace.Tracer
	cleanup  []func(context.Context) error
}

var (
	rootCtx = context.Background()
	current *app
)

var rootCmd = &cobra.Command{
	Use:           "recipebuilder",
	Short:         "Build recipes from an ingredient catalog and keep them in a local store",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(rootCtx, cmd)
		if err != nil {
			return err
		}
		current = a
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if current == nil {
			return nil
		}
		return current.close(rootCtx)
	},
}

func init() {
	rootCmd.PersistentFlags().String("store-dir", "", "Directory for the file store (overrides RECIPE_STORE_DIR)")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog file, JSON or YAML (overrides CATALOG_PATH)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func setup(ctx context.Context, cmd *cobra.Command) (*app, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	cfg, err := recipebuilder.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("SETUP: failed to decode config: %w", err)
	}
	if dir, _ := cmd.Flags().GetString("store-dir"); dir != "" {
		cfg.Store.Backend = recipebuilder.BackendFile
		cfg.Store.Dir = dir
	}
	if path, _ := cmd.Flags().GetString("catalog"); path != "" {
		cfg.Catalog.Path = path
	}

	return newApp(ctx, cfg)
}

// newApp builds an app from cfg. When a step fails, whatever earlier steps
// registered for cleanup is run before returning.
func newApp(ctx context.Context, cfg recipebuilder.Config) (*app, error) {
	a := &app{cfg: cfg}
	if err := a.init(ctx); err != nil {
		return nil, errors.Join(err, a.close(ctx))
	}
	return a, nil
}

// init wires the app from a.cfg. Cleanups registered before a failing step
// are left for the caller to run.
func (a *app) init(ctx context.Context) error {
	cfg := a.cfg

	kv, err := recipebuilder.NewStore(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("SETUP: failed to open store: %w", err)
	}

	if cfg.OtelEnabled {
		tracerProvider, meterProvider, shutdown, err := recipebuilder.InitOtel(ctx)
		if err != nil {
			return fmt.Errorf("SETUP: failed to initialize OpenTelemetry: %w", err)
		}
		a.cleanup = append(a.cleanup, shutdown)
		a.tracer = tracerProvider.Tracer(recipebuilder.TracerNameCLI)
		a.store = recipebuilder.NewRecipeStore(kv, cfg.Store,
			tracerProvider.Tracer(recipebuilder.TracerNameRepository),
			meterProvider.Meter(recipebuilder.TracerNameRepository))
	} else {
		a.store = recipebuilder.NewRecipeStore(kv, cfg.Store, nil, nil)
	}

	var events recipebuilder.EventLogger
	if cfg.Notify.EventLogPath != "" {
		logger, closeLog, err := newEventLogger(cfg.Notify.EventLogPath)
		if err != nil {
			return fmt.Errorf("SETUP: failed to open event log: %w", err)
		}
		events = logger
		a.cleanup = append(a.cleanup, func(context.Context) error { return closeLog() })
	}
	a.events = events

	ingredients, err := recipebuilder.LoadCatalog(ctx, cfg.Catalog, cfg.Store)
	if err != nil {
		return fmt.Errorf("SETUP: failed to load catalog: %w", err)
	}
	a.catalog = catalog.NewLive(ingredients)
	a.notifier = recipebuilder.NewNotifier(cfg.Notify, a.catalog.Catalog, events, nil)

	slog.Debug("SETUP: Ready", "backend", cfg.Store.Backend, "key", cfg.Store.Key, "catalog_size", len(ingredients))
	return nil
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		errs = append(errs, a.cleanup[i](ctx))
	}
	return errors.Join(errs...)
}

func (a *app) newDraft(ctx context.Context) *builder.Draft {
	return builder.New(ctx, a.store, a.catalog.Catalog(), builder.WithNotifier(a.notifier))
}

func newEventLogger(dir string) (*recipebuilder.FileEventLogger, func() error, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	path := recipebuilder.NewEventLogFilePath(filepath.Clean(dir))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := recipebuilder.NewFileEventLogger(f)
	return logger, func() error { return errors.Join(logger.Flush(), f.Close()) }, nil
}
