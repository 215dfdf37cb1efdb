/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package store is the frame store: CRUD and parent/child bookkeeping for the
// frame tree. All anchor mutation funnels through here — the anchor engine is
// a pure function of the table and never mutates frames itself. Anchor lists
// are replaced wholesale on every edit, never patched per element.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"frameforge/internal/anchor"
	"frameforge/internal/domain"
	applog "frameforge/internal/log"
)

var (
	ErrNotFound      = errors.New("frame not found")
	ErrAnchorIndex   = errors.New("anchor index out of range")
	ErrHasChildren   = errors.New("frame has children")
	ErrDuplicateName = errors.New("frame name already in use")
)

// Store holds the frame table of one open project. Single caller, synchronous;
// the resolution engine runs against snapshots of this table within one UI
// event, so no locking is needed here.
type Store struct {
	frames map[string]*domain.Frame
	// insertion order, used for stable listing and export ordering
	order []string
}

func New() *Store {
	return &Store{frames: make(map[string]*domain.Frame)}
}

// FromProject loads a manifest's frames into a fresh store.
func FromProject(p *domain.Project) *Store {
	s := New()
	for i := range p.Frames {
		f := p.Frames[i]
		s.frames[f.ID] = &f
		s.order = append(s.order, f.ID)
	}
	return s
}

// ToProject writes the current frame table into the given manifest, replacing
// its frame list.
func (s *Store) ToProject(p *domain.Project) {
	p.Frames = p.Frames[:0]
	for _, id := range s.order {
		p.Frames = append(p.Frames, *s.frames[id])
	}
}

// Create adds a new frame with the given name, kind and rectangle under
// parentID ("" for the root level). The frame starts with the single default
// TOPLEFT anchor.
func (s *Store) Create(name, kind, parentID string, r domain.Rect) (*domain.Frame, error) {
	if parentID != "" {
		if _, ok := s.frames[parentID]; !ok {
			return nil, fmt.Errorf("parent %s: %w", parentID, ErrNotFound)
		}
	}
	for _, f := range s.frames {
		if f.Name == name {
			return nil, fmt.Errorf("%q: %w", name, ErrDuplicateName)
		}
	}
	f := &domain.Frame{
		ID:       uuid.NewString(),
		Name:     name,
		Kind:     kind,
		ParentID: parentID,
		X:        r.X, Y: r.Y, Width: r.Width, Height: r.Height,
		Anchors: anchor.DefaultAnchors(r.X, r.Y, r.Width, r.Height),
		Visible: true,
	}
	s.frames[f.ID] = f
	s.order = append(s.order, f.ID)
	return f, nil
}

// Get returns the frame with the given id.
func (s *Store) Get(id string) (*domain.Frame, bool) {
	f, ok := s.frames[id]
	return f, ok
}

// ByName returns the first frame with the given name.
func (s *Store) ByName(name string) (*domain.Frame, bool) {
	for _, id := range s.order {
		if s.frames[id].Name == name {
			return s.frames[id], true
		}
	}
	return nil, false
}

// Remove deletes a frame. Children are reparented to the removed frame's
// parent. Anchors on other frames that reference the removed id are left as
// dangling back-references: RelativeTo never implies a deletion cascade, and
// the resolver treats a missing target as absolute.
func (s *Store) Remove(id string) error {
	f, ok := s.frames[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	for _, child := range s.Children(id) {
		child.ParentID = f.ParentID
	}
	delete(s.frames, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Children returns the direct children of a frame in insertion order.
func (s *Store) Children(id string) []*domain.Frame {
	var out []*domain.Frame
	for _, oid := range s.order {
		if s.frames[oid].ParentID == id {
			out = append(out, s.frames[oid])
		}
	}
	return out
}

// Roots returns the top-level frames in insertion order.
func (s *Store) Roots() []*domain.Frame { return s.Children("") }

// Frames returns all frames in insertion order.
func (s *Store) Frames() []*domain.Frame {
	out := make([]*domain.Frame, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.frames[id])
	}
	return out
}

// Len returns the number of frames.
func (s *Store) Len() int { return len(s.order) }

// Table returns the id-to-frame mapping the resolution engine consumes. The
// engine treats it as an immutable snapshot; callers must not interleave
// store mutations with a resolution pass.
func (s *Store) Table() map[string]*domain.Frame { return s.frames }

// SetBounds applies a manual position/size edit. The stored rectangle is
// updated and the anchor list is replaced with the recomputed one; relative
// anchors keep their offsets, dynamic-size pairs collapse to the first anchor.
func (s *Store) SetBounds(id string, r domain.Rect) error {
	f, ok := s.frames[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	f.X, f.Y, f.Width, f.Height = r.X, r.Y, r.Width, r.Height
	f.Anchors = anchor.UpdateAnchorsFromBounds(f.Anchors, r.X, r.Y, r.Width, r.Height)
	s.warnOnConflicts(f)
	return nil
}

// AttachRelative re-expresses the anchor at index as relative to targetPoint
// on the target frame, preserving the frame's current visual position: the
// new offset reproduces the old absolute position.
func (s *Store) AttachRelative(id string, index int, targetID string, targetPoint domain.AnchorPoint) error {
	f, ok := s.frames[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	target, ok := s.frames[targetID]
	if !ok {
		return fmt.Errorf("target %s: %w", targetID, ErrNotFound)
	}
	if index < 0 || index >= len(f.Anchors) {
		return fmt.Errorf("index %d: %w", index, ErrAnchorIndex)
	}
	off := anchor.RelativeOffset(f, f.Anchors[index], target, targetPoint)
	next := append([]domain.Anchor(nil), f.Anchors...)
	tp := targetPoint
	next[index].X = off.DX
	next[index].Y = off.DY
	next[index].RelativeTo = targetID
	next[index].RelativePoint = &tp
	f.Anchors = next
	s.warnOnConflicts(f)
	return nil
}

// DetachRelative converts the anchor at index back to absolute coordinates,
// keeping the point where resolution currently places it.
func (s *Store) DetachRelative(id string, index int) error {
	f, ok := s.frames[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if index < 0 || index >= len(f.Anchors) {
		return fmt.Errorf("index %d: %w", index, ErrAnchorIndex)
	}
	r := anchor.EffectiveBounds(f, s.frames)
	off := anchor.PointOffset(f.Anchors[index].Point, r.Width, r.Height)
	next := append([]domain.Anchor(nil), f.Anchors...)
	next[index].X = r.X + off.DX
	next[index].Y = r.Y + off.DY
	next[index].RelativeTo = ""
	next[index].RelativePoint = nil
	f.Anchors = next
	return nil
}

// AddAnchor appends an anchor to the frame's list.
func (s *Store) AddAnchor(id string, a domain.Anchor) error {
	f, ok := s.frames[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	f.Anchors = append(append([]domain.Anchor(nil), f.Anchors...), a)
	s.warnOnConflicts(f)
	return nil
}

// RemoveAnchor removes the anchor at index.
func (s *Store) RemoveAnchor(id string, index int) error {
	f, ok := s.frames[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if index < 0 || index >= len(f.Anchors) {
		return fmt.Errorf("index %d: %w", index, ErrAnchorIndex)
	}
	next := append([]domain.Anchor(nil), f.Anchors...)
	f.Anchors = append(next[:index], next[index+1:]...)
	return nil
}

// warnOnConflicts runs the advisory conflict check after an anchor edit.
// Conflicts never block storage; the editor surfaces them as warnings.
func (s *Store) warnOnConflicts(f *domain.Frame) {
	if rep := anchor.DetectConflicts(f.Anchors); rep.Type != anchor.ConflictNone {
		applog.WithComponent("store").Warn("anchor conflict",
			slog.String("frame", f.Name),
			slog.String("type", string(rep.Type)),
			slog.String("detail", rep.Description))
	}
}

// Snapshot serializes the whole frame table for the undo stack.
func (s *Store) Snapshot() ([]byte, error) {
	frames := make([]domain.Frame, 0, len(s.order))
	for _, id := range s.order {
		frames = append(frames, *s.frames[id])
	}
	return json.Marshal(frames)
}

// Restore replaces the frame table with a previously captured snapshot.
func (s *Store) Restore(blob []byte) error {
	var frames []domain.Frame
	if err := json.Unmarshal(blob, &frames); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	s.frames = make(map[string]*domain.Frame, len(frames))
	s.order = s.order[:0]
	for i := range frames {
		f := frames[i]
		s.frames[f.ID] = &f
		s.order = append(s.order, f.ID)
	}
	return nil
}

// Referencing returns ids of frames with at least one anchor pinned to the
// given frame, sorted for stable output. Used by the editor to warn before a
// deletion leaves dangling references.
func (s *Store) Referencing(id string) []string {
	var out []string
	for fid, f := range s.frames {
		for _, a := range f.Anchors {
			if a.RelativeTo == id {
				out = append(out, fid)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
