/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"path/filepath"
	"time"

	"log/slog"

	"github.com/fsnotify/fsnotify"

	applog "frameforge/internal/log"
)

// ManifestWatcher notifies about external edits to a project's layout.json,
// so an open editor can offer to reload. The manifest is replaced by rename
// on save, so the watch is on the project directory, not the file itself.
type ManifestWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchManifest starts watching the manifest of the project at root and
// invokes onChange after each external modification. Rapid event bursts
// (write plus rename on a transactional save) collapse into one callback.
func WatchManifest(root string, onChange func()) (*ManifestWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(root); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}

	mw := &ManifestWatcher{watcher: w, done: make(chan struct{})}
	target := filepath.Join(root, ManifestFileName)
	l := applog.WithComponent("storage").With(slog.String("manifest", target))

	go func() {
		defer close(mw.done)
		const settle = 200 * time.Millisecond
		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(settle)
					fire = timer.C
				} else {
					timer.Reset(settle)
				}
			case <-fire:
				timer = nil
				fire = nil
				l.Debug("manifest changed on disk")
				onChange()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				l.Warn("watch error", slog.Any("err", err))
			}
		}
	}()
	return mw, nil
}

// Close stops watching and waits for the event loop to exit.
func (mw *ManifestWatcher) Close() error {
	err := mw.watcher.Close()
	<-mw.done
	return err
}
