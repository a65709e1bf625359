// Package app wires configuration, the skill catalog, recents and the
// queue together for the skillpick binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/runger/skillpick/internal/catalog"
	"github.com/runger/skillpick/internal/config"
	applog "github.com/runger/skillpick/internal/log"
	"github.com/runger/skillpick/internal/picker"
	"github.com/runger/skillpick/internal/queue"
	"github.com/runger/skillpick/internal/session"
	"github.com/runger/skillpick/internal/usage"
)

// Env holds everything a picker session needs.
type Env struct {
	Config *config.Config
	Paths  *config.Paths
	Items  []catalog.Item
	Queue  *queue.Store

	// Recents is nil when recents are disabled.
	Recents usage.Store

	now func() time.Time
}

// Open loads the catalog and opens the recents and queue stores.
func Open(ctx context.Context, cfg *config.Config, paths *config.Paths) (*Env, error) {
	items, err := LoadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}

	env := &Env{
		Config: cfg,
		Paths:  paths,
		Items:  items,
		Queue:  queue.NewStore(paths.QueueFile()),
		now:    time.Now,
	}

	if cfg.Recents.Enabled {
		store, err := usage.Open(cfg.Recents.Backend, paths.RecentsFile(), paths.RecentsDB())
		if err != nil {
			// Recents are an optional feature; the picker still works without them.
			slog.Warn("recents unavailable", "backend", cfg.Recents.Backend, "error", err)
		} else {
			env.Recents = store
		}
	}
	return env, nil
}

// LoadCatalog scans the configured skill roots.
func LoadCatalog(ctx context.Context, cfg *config.Config) ([]catalog.Item, error) {
	trusted, local := cfg.SkillDirs()

	sources := make([]catalog.Source, 0, len(trusted)+len(local))
	for _, dir := range trusted {
		sources = append(sources, catalog.Source{Dir: dir, Origin: catalog.OriginTrusted})
	}
	for _, dir := range local {
		sources = append(sources, catalog.Source{Dir: dir, Origin: catalog.OriginLocal})
	}

	loader := catalog.NewLoader(sources...)
	loader.FileName = cfg.Catalog.FileName
	loader.FollowSymlinks = cfg.Catalog.FollowSymlinks

	start := time.Now()
	items, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	applog.LogCatalogLoaded(slog.Default(), len(sources), len(items), time.Since(start))
	return items, nil
}

// Close releases the recents store.
func (e *Env) Close() error {
	if e.Recents == nil {
		return nil
	}
	return e.Recents.Close()
}

// LoadRecents returns the stored recents, or nil when they are disabled or
// unreadable.
func (e *Env) LoadRecents(ctx context.Context) []usage.Record {
	return usage.LoadQuiet(ctx, e.Recents)
}

// Queued returns the queued skill name. An unreadable queue counts as empty.
func (e *Env) Queued() string {
	name, err := e.Queue.Get()
	if err != nil {
		slog.Warn("failed to read queue", "path", e.Queue.Path, "error", err)
		return ""
	}
	return name
}

// NewSession opens a selection session with query already typed.
func (e *Env) NewSession(ctx context.Context, query string) *session.State {
	st := session.New(e.Items, e.Queued(), e.LoadRecents(ctx))
	for _, r := range query {
		st.Handle(session.Char(r))
	}
	return st
}

// PickerOptions translates the picker section of the config.
func (e *Env) PickerOptions() picker.Options {
	p := e.Config.Picker
	return picker.Options{
		IdleTimeout:      time.Duration(p.IdleTimeoutSecs) * time.Second,
		MaxVisible:       p.MaxVisible,
		ShowDescriptions: p.ShowDescriptions,
		HighlightMatches: p.HighlightMatches,
	}
}

// Apply performs the side effects of a finished session: a selection is
// queued and recorded as used, an unqueue clears the queue.
func (e *Env) Apply(ctx context.Context, st *session.State, action session.Action) error {
	switch action.Kind {
	case session.ActionSelect:
		if err := e.Queue.Set(action.Item.Name); err != nil {
			return fmt.Errorf("failed to queue %s: %w", action.Item.Name, err)
		}
		if e.Recents != nil {
			usage.SaveQuiet(ctx, e.Recents, st.RecordUsage(action.Item, e.now()))
		}
	case session.ActionUnqueue:
		if err := e.Queue.Clear(); err != nil && !errors.Is(err, queue.ErrNotQueued) {
			return fmt.Errorf("failed to unqueue: %w", err)
		}
	case session.ActionCancel:
	}
	return nil
}

// Touch records one use of it outside a picker session.
func (e *Env) Touch(ctx context.Context, it catalog.Item) bool {
	if e.Recents == nil {
		return false
	}
	records := usage.Touch(e.LoadRecents(ctx), it.Name, it.Namespace, e.now())
	return usage.SaveQuiet(ctx, e.Recents, records)
}
