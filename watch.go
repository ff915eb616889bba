/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"context"
	"path/filepath"
	"time"

	"github.com/Seednode/feud/internal/feud"
	"github.com/fsnotify/fsnotify"
)

const reloadDelay = 250 * time.Millisecond

// watchQuestions reloads the question file whenever it changes on disk and
// hands the new list to the game manager. The parent directory is watched
// so that editors which replace the file on save are still noticed.
func watchQuestions(ctx context.Context, cfg *Config, path string, gm *GameManager) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = watcher.Close()

		return err
	}

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()

		return err
	}

	logf(cfg, "WATCH: Watching %s for changes", abs)

	go func() {
		defer watcher.Close()

		var pending <-chan time.Time

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}

				// Saves often arrive as several events; wait for them to settle
				pending = time.After(reloadDelay)

			case <-pending:
				pending = nil

				questions, err := feud.ReadQuestions(abs)
				if err != nil {
					logf(cfg, "WATCH: Keeping previous questions: %v", err)

					continue
				}

				logf(cfg, "WATCH: Reloaded %d questions from %s", len(questions), abs)
				gm.reloadQuestions(questions)

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logf(cfg, "WATCH: %v", err)
			}
		}
	}()

	return nil
}
