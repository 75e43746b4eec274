package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// watchDebounce is how long the watcher waits for changes to settle
const watchDebounce = 200 * time.Millisecond

// watch calls rebuild every time a Java file under paths changes, until ctx
// is cancelled. Bursts of changes, such as a branch switch, cause one rebuild.
func watch(ctx context.Context, paths []string, rebuild func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range watchedDirs(paths) {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						log.WithField("dir", event.Name).WithError(err).Warn("Failed to watch directory")
					}
				}
			}
			if filepath.Ext(event.Name) != ".java" || event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			log.WithFields(log.Fields{"file": event.Name, "op": event.Op.String()}).Debug("Source changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			rebuild()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("Watcher error")
		}
	}
}

// watchedDirs lists every directory that may hold sources: each directory
// argument and its subdirectories, and the directory of each file argument
func watchedDirs(paths []string) []string {
	seen := make(map[string]struct{})
	var dirs []string
	add := func(dir string) {
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			dirs = append(dirs, dir)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			add(filepath.Dir(path))
			continue
		}
		_ = filepath.WalkDir(path, func(sub string, d os.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return nil
			}
			name := d.Name()
			if sub != path && (strings.HasPrefix(name, ".") || name == "build" || name == "out") {
				return filepath.SkipDir
			}
			add(sub)
			return nil
		})
	}
	return dirs
}
