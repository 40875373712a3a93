package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fortio.org/log"
	"github.com/LegacyCodeHQ/amalgamate/config"
	"github.com/LegacyCodeHQ/amalgamate/internal/runner"
	"github.com/LegacyCodeHQ/amalgamate/syntaxcheck"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

var skippedDirs = map[string]bool{
	".git":        true,
	".svn":        true,
	".hg":         true,
	".idea":       true,
	".vscode":     true,
	"__pycache__": true,
}

var sourceExtensions = buildSourceExtensions()

func buildSourceExtensions() map[string]bool {
	extensions := make(map[string]bool)
	for _, language := range syntaxcheck.SupportedLanguages() {
		for _, ext := range language.Extensions {
			extensions[ext] = true
		}
	}
	return extensions
}

// changeFilter decides which filesystem events call for a rebuild.
type changeFilter struct {
	configPath string
	targetPath string
}

func newChangeFilter(configPath, targetPath string) changeFilter {
	return changeFilter{
		configPath: canonicalPath(configPath),
		targetPath: canonicalPath(targetPath),
	}
}

func (f changeFilter) isRelevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	name := canonicalPath(event.Name)
	if name == f.targetPath {
		return false
	}
	if name == f.configPath {
		return true
	}
	return sourceExtensions[strings.ToLower(filepath.Ext(name))]
}

// canonicalPath makes path absolute and resolves symlinks in its directory,
// so event names and configured paths compare equal.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	dir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return abs
	}
	return filepath.Join(dir, filepath.Base(abs))
}

// rebuilder runs full amalgamations one at a time.
type rebuilder struct {
	mu   sync.Mutex
	out  io.Writer
	opts *runner.Options
}

func (r *rebuilder) rebuild(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, err := runner.Run(ctx, r.out, r.opts)
	return err
}

func (r *rebuilder) rebuildAndLog(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := r.rebuild(ctx); err != nil {
		log.Errf("Rebuild failed: %v", err)
	}
}

// sourceDirs returns the source root followed by the include directories.
// Include directories may lie outside the source root.
func sourceDirs(cfg *config.Config) []string {
	resolver := config.NewResolver(cfg, func(string) bool { return false })
	var dirs []string
	for _, dir := range resolver.SearchDirs() {
		dirs = append(dirs, dir.String())
	}
	return dirs
}

func watchAndRebuild(ctx context.Context, watcher *fsnotify.Watcher, filter changeFilter, r *rebuilder) error {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				addIfDirectory(watcher, event.Name)
			}

			if !filter.isRelevant(event) {
				continue
			}
			log.LogVf("Change detected: %s", event)

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceInterval, func() {
				r.rebuildAndLog(ctx)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Errf("Watcher error: %v", err)
		}
	}
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return addWatchDirsWithAdder(root, watcher.Add)
}

func addWatchDirsWithAdder(root string, add func(string) error) error {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func addIfDirectory(watcher *fsnotify.Watcher, path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		_ = addWatchDirs(watcher, path)
	}
}
