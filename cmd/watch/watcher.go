package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"

	"github.com/LegacyCodeHQ/lessbundle/bundle"
)

// session rebuilds the bundle and keeps the watched directories in step with
// the files the last successful build read.
type session struct {
	opts   bundle.Options
	logger *slog.Logger
	out    io.Writer
	broker *broker

	mu          sync.Mutex
	nextID      int64
	watchedDirs map[string]bool
	outputs     map[string]bool
}

func newSession(opts bundle.Options, logger *slog.Logger, out io.Writer, b *broker) *session {
	return &session{
		opts:        opts,
		logger:      logger,
		out:         out,
		broker:      b,
		watchedDirs: make(map[string]bool),
		outputs:     make(map[string]bool),
	}
}

// rebuild bundles and writes once. Concurrent calls run one after the other.
func (s *session) rebuild(ctx context.Context, w watchAdder) (*bundle.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	event := buildEvent{ID: s.nextID, Timestamp: time.Now()}

	start := time.Now()
	result, err := bundle.Bundle(ctx, s.opts)
	if result != nil {
		event.Text = result.Text
		event.Files = result.Files
		for _, write := range result.Writes {
			s.outputs[write.Path] = true
		}
		if w != nil {
			s.syncWatches(w, result.Files)
		}
	}
	if err != nil {
		event.Error = err.Error()
		s.broker.publish(event)
		fmt.Fprintf(s.out, "%s %v\n", color.RedString("✗ rebuild failed:"), err)
		return result, err
	}

	s.broker.publish(event)
	fmt.Fprintf(s.out, "%s %d %s, %s in %s\n",
		color.GreenString("✓ bundled"),
		len(result.Files), pluralFiles(len(result.Files)),
		humanize.Bytes(uint64(len(result.Text))),
		time.Since(start).Round(time.Millisecond))
	return result, nil
}

// watchAdder is the subset of *fsnotify.Watcher used to manage watched directories.
type watchAdder interface {
	Add(name string) error
	Remove(name string) error
}

// syncWatches watches the directory of every file in files and stops watching
// directories no file lives in anymore.
func (s *session) syncWatches(w watchAdder, files []string) {
	wanted := make(map[string]bool, len(files))
	for _, file := range files {
		wanted[filepath.Dir(file)] = true
	}

	for _, dir := range sortedKeys(wanted) {
		if s.watchedDirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			s.logger.Warn("failed to watch directory", "dir", dir, "error", err)
			continue
		}
		s.watchedDirs[dir] = true
		s.logger.Debug("watching directory", "dir", dir)
	}

	for _, dir := range sortedKeys(s.watchedDirs) {
		if wanted[dir] {
			continue
		}
		_ = w.Remove(dir)
		delete(s.watchedDirs, dir)
		s.logger.Debug("stopped watching directory", "dir", dir)
	}
}

func (s *session) watchedDirectories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedKeys(s.watchedDirs)
}

// isRelevantChange reports whether event touches a stylesheet that is not one
// of the bundle's own outputs.
func (s *session) isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}

	s.mu.Lock()
	isOutput := s.outputs[event.Name]
	s.mu.Unlock()
	if isOutput {
		return false
	}

	ext := strings.ToLower(filepath.Ext(event.Name))
	exts := s.opts.Extensions.WithDefaults()
	return ext == strings.ToLower(exts.Primary) || ext == strings.ToLower(exts.Precompiled)
}

func watchAndRebuild(ctx context.Context, s *session, watcher *fsnotify.Watcher, debounce time.Duration) error {
	return watchEvents(ctx, s, watcher, watcher.Events, watcher.Errors, debounce)
}

// watchEvents rebuilds once changes settle for debounce. It does not return
// while a rebuild started by one of its timers is still running.
func watchEvents(ctx context.Context, s *session, w watchAdder, events <-chan fsnotify.Event, errs <-chan error, debounce time.Duration) error {
	var (
		debounceTimer *time.Timer
		inflight      sync.WaitGroup
	)
	stopTimer := func() {
		if debounceTimer != nil && debounceTimer.Stop() {
			inflight.Done()
		}
	}
	defer inflight.Wait()
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return nil
			}

			if !s.isRelevantChange(event) {
				continue
			}
			s.logger.Debug("change detected", "file", event.Name, "op", event.Op.String())

			stopTimer()
			inflight.Add(1)
			debounceTimer = time.AfterFunc(debounce, func() {
				defer inflight.Done()
				if ctx.Err() != nil {
					return
				}
				_, _ = s.rebuild(ctx, w)
			})

		case err, ok := <-errs:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", "error", err)
		}
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func pluralFiles(n int) string {
	if n == 1 {
		return "file"
	}
	return "files"
}
