// Package catalog keeps a draft's ingredient catalog in sync with a file on disk.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"recipebuilder/recipes"
	"recipebuilder/storage"
)

// Target receives reloaded catalogs. *builder.Draft satisfies it.
type Target interface {
	SetCatalog(catalog []recipes.Ingredient)
}

// Watcher monitors a catalog file and pushes every successfully parsed
// version to its targets. A version that fails to parse is logged and the
// targets keep the previous catalog.
type Watcher struct {
	path    string
	format  recipes.Format
	state   storage.CatalogState
	targets []Target
	watcher *fsnotify.Watcher
}

// NewWatcher watches the directory holding path, so editors that replace the
// file by rename are still seen.
func NewWatcher(path string, targets ...Target) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:    abs,
		format:  recipes.FormatFromPath(abs),
		state:   storage.NewFileCatalogState(abs),
		targets: targets,
		watcher: w,
	}, nil
}

// Reload reads the catalog file once and hands it to every target.
func (cw *Watcher) Reload(ctx context.Context) error {
	catalog, err := recipes.LoadCatalog(ctx, cw.state, cw.format)
	if err != nil {
		return err
	}
	for _, t := range cw.targets {
		t.SetCatalog(catalog)
	}
	slog.Info("CATALOG: Loaded catalog", "path", cw.path, "ingredients", len(catalog))
	return nil
}

// Watch blocks until ctx is done or the watcher is closed.
func (cw *Watcher) Watch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				slog.Debug("CATALOG: Catalog file changed", "path", event.Name, "op", event.Op.String())
				if err := cw.Reload(ctx); err != nil {
					slog.Error("CATALOG: Keeping previous catalog", "path", cw.path, "error", err)
				}
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("CATALOG: Watch error", "error", err)
		}
	}
}

func (cw *Watcher) Close() error {
	return cw.watcher.Close()
}
