package catalog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/runger/skillpick/internal/sanitize"
)

// DefaultFileName is the definition file looked for in each skill directory.
const DefaultFileName = "SKILL.md"

// maxDefinitionBytes bounds how much of a definition file is read.
const maxDefinitionBytes = 256 * 1024

// Source is one root directory to scan.
type Source struct {
	Dir    string
	Origin Origin
}

// Loader scans skill roots into a catalog.
type Loader struct {
	Sources        []Source
	FileName       string // Defaults to DefaultFileName
	FollowSymlinks bool
	Logger         *slog.Logger // Defaults to slog.Default()
}

// NewLoader creates a loader over the given sources that follows symlinks.
func NewLoader(sources ...Source) *Loader {
	return &Loader{
		Sources:        sources,
		FileName:       DefaultFileName,
		FollowSymlinks: true,
	}
}

// Load scans every source and returns the deduplicated catalog.
//
// Trusted sources are scanned before local ones; within an origin the
// configured order is kept. A missing root is skipped silently and
// unreadable entries are logged and skipped, so the only error returned is
// the context's.
func (l *Loader) Load(ctx context.Context) ([]Item, error) {
	sources := make([]Source, len(l.Sources))
	copy(sources, l.Sources)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Origin < sources[j].Origin
	})

	w := &walker{
		fileName: l.FileName,
		follow:   l.FollowSymlinks,
		logger:   l.Logger,
		visited:  make(map[string]bool),
	}
	if w.fileName == "" {
		w.fileName = DefaultFileName
	}
	if w.logger == nil {
		w.logger = slog.Default()
	}

	var items []Item
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		found, err := w.scanRoot(ctx, src)
		if err != nil {
			return nil, err
		}
		items = append(items, found...)
	}

	out := dedupe(items)
	if dropped := len(items) - len(out); dropped > 0 {
		w.logger.Debug("shadowed duplicate skills", "count", dropped)
	}
	return out, nil
}

// walker carries the per-Load scan state.
type walker struct {
	fileName string
	follow   bool
	logger   *slog.Logger
	visited  map[string]bool // Resolved directories already scanned
}

// scanRoot collects skills from one root, accepting both the flat
// <root>/<skill>/ layout and the nested <root>/<namespace>/<skill>/ layout.
func (w *walker) scanRoot(ctx context.Context, src Source) ([]Item, error) {
	root := expandHome(src.Dir)
	if root == "" {
		return nil, nil
	}
	info, err := os.Stat(root)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Warn("cannot access skill root", "path", root, "error", err)
		}
		return nil, nil
	}
	if !info.IsDir() {
		w.logger.Warn("skill root is not a directory", "path", root)
		return nil, nil
	}

	var items []Item
	for _, dir := range w.subdirs(root) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if w.seen(dir) {
			continue
		}
		if it, ok := w.loadSkill(dir, "", src.Origin); ok {
			items = append(items, it)
			continue
		}

		// Not a skill itself: treat it as a namespace directory.
		ns := filepath.Base(dir)
		for _, child := range w.subdirs(dir) {
			if w.seen(child) {
				continue
			}
			if it, ok := w.loadSkill(child, ns, src.Origin); ok {
				items = append(items, it)
			}
		}
	}
	return items, nil
}

// subdirs lists the directories directly under dir in name order, following
// symlinked directories when enabled.
func (w *walker) subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.logger.Warn("cannot read skill directory", "path", dir, "error", err)
		return nil
	}

	var dirs []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		switch {
		case e.IsDir():
			dirs = append(dirs, path)
		case e.Type()&os.ModeSymlink != 0 && w.follow:
			info, err := os.Stat(path)
			if err != nil {
				w.logger.Warn("dangling skill symlink", "path", path, "error", err)
				continue
			}
			if info.IsDir() {
				dirs = append(dirs, path)
			}
		}
	}
	return dirs
}

// seen reports whether the resolved directory was already scanned and marks
// it otherwise. Symlink cycles and aliases therefore load at most once.
func (w *walker) seen(dir string) bool {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		resolved = dir
	}
	if w.visited[resolved] {
		return true
	}
	w.visited[resolved] = true
	return false
}

// loadSkill reads dir's definition file. It reports false when dir has no
// definition file or the file cannot be read.
func (w *walker) loadSkill(dir, parentNS string, origin Origin) (Item, bool) {
	path := filepath.Join(dir, w.fileName)
	content, err := readLimited(path)
	if err != nil {
		if !os.IsNotExist(err) {
			w.logger.Warn("failed to read skill file", "path", path, "error", err)
		}
		return Item{}, false
	}

	fm, _ := ParseFrontmatter(content)

	name := sanitize.Text(fm.Name)
	if name == "" {
		name = filepath.Base(dir)
	}
	ns := sanitize.Text(fm.namespace())
	if ns == "" {
		ns = parentNS
	}
	if ns == "" {
		ns = DefaultNamespace
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return Item{
		Name:        name,
		Namespace:   ns,
		Description: sanitize.Text(fm.Description),
		Origin:      origin,
		Path:        abs,
	}, true
}

// readLimited reads at most maxDefinitionBytes of path.
func readLimited(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxDefinitionBytes))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
