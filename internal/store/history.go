/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"fmt"
	"time"

	"frameforge/internal/undo"
)

// History ties a Store to the undo stack. The session captures a base
// snapshot on creation; Checkpoint records the post-edit state after every
// mutation, so Undo restores the previous checkpoint (or the base) and Redo
// walks forward again. Rapid checkpoints with the same label coalesce in the
// manager, one drag gesture becomes one history entry.
type History struct {
	store *Store
	mgr   *undo.Manager
	base  []byte
}

// NewHistory starts an edit session over the store's current state.
func NewHistory(s *Store, cfg undo.Config) (*History, error) {
	base, err := s.Snapshot()
	if err != nil {
		return nil, fmt.Errorf("capture base state: %w", err)
	}
	return &History{store: s, mgr: undo.NewManager(cfg), base: base}, nil
}

// Checkpoint records the current store state under the given edit label.
// Call it after each completed mutation.
func (h *History) Checkpoint(label string) error {
	blob, err := h.store.Snapshot()
	if err != nil {
		return fmt.Errorf("capture state: %w", err)
	}
	h.mgr.Push(undo.Snapshot{Label: label, Blob: blob, TS: time.Now()})
	return nil
}

// Undo reverts the store to the state before the most recent checkpoint.
// It reports false when there is nothing to undo.
func (h *History) Undo() (bool, error) {
	if _, ok := h.mgr.Undo(); !ok {
		return false, nil
	}
	blob := h.base
	if s, ok := h.mgr.Current(); ok {
		blob = s.Blob
	}
	if err := h.store.Restore(blob); err != nil {
		return false, fmt.Errorf("restore state: %w", err)
	}
	return true, nil
}

// Redo re-applies the most recently undone checkpoint.
func (h *History) Redo() (bool, error) {
	s, ok := h.mgr.Redo()
	if !ok {
		return false, nil
	}
	if err := h.store.Restore(s.Blob); err != nil {
		return false, fmt.Errorf("restore state: %w", err)
	}
	return true, nil
}

// Depth returns the number of undoable checkpoints.
func (h *History) Depth() int {
	_, depth, _ := h.mgr.Stats()
	return depth
}
