/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package store

import (
	"errors"
	"math"
	"testing"

	"frameforge/internal/anchor"
	"frameforge/internal/domain"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCreateAssignsDefaultAnchor(t *testing.T) {
	s := New()
	f, err := s.Create("Root", "BACKDROP", "", domain.Rect{X: 0.1, Y: 0.2, Width: 0.3, Height: 0.1})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.ID == "" {
		t.Fatalf("missing id")
	}
	if len(f.Anchors) != 1 || f.Anchors[0].Point != domain.TopLeft {
		t.Fatalf("expected single default TOPLEFT anchor, got %+v", f.Anchors)
	}
	if !almostEqual(f.Anchors[0].X, 0.1) || !almostEqual(f.Anchors[0].Y, 0.3) {
		t.Fatalf("default anchor misplaced: %+v", f.Anchors[0])
	}
}

func TestCreateRejectsDuplicateNameAndMissingParent(t *testing.T) {
	s := New()
	if _, err := s.Create("A", "BACKDROP", "", domain.Rect{}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create("A", "BACKDROP", "", domain.Rect{}); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := s.Create("B", "BACKDROP", "nope", domain.Rect{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveReparentsChildrenAndKeepsReferences(t *testing.T) {
	s := New()
	root, _ := s.Create("Root", "BACKDROP", "", domain.Rect{Width: 0.8, Height: 0.6})
	mid, _ := s.Create("Mid", "BACKDROP", root.ID, domain.Rect{Width: 0.4, Height: 0.3})
	leaf, _ := s.Create("Leaf", "TEXT", mid.ID, domain.Rect{Width: 0.1, Height: 0.05})

	// Another frame anchored to mid keeps its (now dangling) reference.
	other, _ := s.Create("Other", "BUTTON", "", domain.Rect{Width: 0.1, Height: 0.05})
	if err := s.AttachRelative(other.ID, 0, mid.ID, domain.TopLeft); err != nil {
		t.Fatalf("AttachRelative: %v", err)
	}

	if err := s.Remove(mid.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if leaf.ParentID != root.ID {
		t.Fatalf("child not reparented: %q", leaf.ParentID)
	}
	if other.Anchors[0].RelativeTo != mid.ID {
		t.Fatalf("back-reference must not cascade on delete")
	}
	// The resolver tolerates the dangling reference.
	if r := anchor.EffectiveBounds(other, s.Table()); r.Width != 0.1 {
		t.Fatalf("dangling reference broke resolution: %+v", r)
	}
}

func TestSetBoundsReplacesAnchorsWholesale(t *testing.T) {
	s := New()
	f, _ := s.Create("A", "BACKDROP", "", domain.Rect{X: 0, Y: 0, Width: 0.2, Height: 0.1})
	if err := s.AddAnchor(f.ID, domain.Anchor{Point: domain.BottomRight, X: 0.2, Y: 0}); err != nil {
		t.Fatalf("AddAnchor: %v", err)
	}
	// TOPLEFT+BOTTOMRIGHT is dynamic: a manual resize collapses to the first.
	if err := s.SetBounds(f.ID, domain.Rect{X: 0.1, Y: 0.1, Width: 0.3, Height: 0.2}); err != nil {
		t.Fatalf("SetBounds: %v", err)
	}
	if len(f.Anchors) != 1 || f.Anchors[0].Point != domain.TopLeft {
		t.Fatalf("dynamic pair should collapse on resize, got %+v", f.Anchors)
	}
	if !almostEqual(f.Anchors[0].X, 0.1) || !almostEqual(f.Anchors[0].Y, 0.3) {
		t.Fatalf("anchor not recomputed: %+v", f.Anchors[0])
	}
}

func TestAttachDetachRoundTripPreservesPosition(t *testing.T) {
	s := New()
	target, _ := s.Create("T", "BACKDROP", "", domain.Rect{X: 0.05, Y: 0.05, Width: 0.1, Height: 0.1})
	f, _ := s.Create("F", "BUTTON", "", domain.Rect{X: 0.2, Y: 0.3, Width: 0.1, Height: 0.05})

	before := anchor.EffectiveBounds(f, s.Table())
	if err := s.AttachRelative(f.ID, 0, target.ID, domain.Center); err != nil {
		t.Fatalf("AttachRelative: %v", err)
	}
	mid := anchor.EffectiveBounds(f, s.Table())
	if !almostEqual(mid.X, before.X) || !almostEqual(mid.Y, before.Y) {
		t.Fatalf("attach moved the frame: %+v -> %+v", before, mid)
	}
	if !f.Anchors[0].IsRelative() || f.Anchors[0].TargetPoint() != domain.Center {
		t.Fatalf("anchor not attached: %+v", f.Anchors[0])
	}

	if err := s.DetachRelative(f.ID, 0); err != nil {
		t.Fatalf("DetachRelative: %v", err)
	}
	after := anchor.EffectiveBounds(f, s.Table())
	if !almostEqual(after.X, before.X) || !almostEqual(after.Y, before.Y) {
		t.Fatalf("detach moved the frame: %+v -> %+v", before, after)
	}
	if f.Anchors[0].IsRelative() {
		t.Fatalf("anchor still relative after detach")
	}
}

func TestSnapshotRestore(t *testing.T) {
	s := New()
	a, _ := s.Create("A", "BACKDROP", "", domain.Rect{Width: 0.2, Height: 0.1})
	blob, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if err := s.SetBounds(a.ID, domain.Rect{X: 0.5, Y: 0.5, Width: 0.1, Height: 0.1}); err != nil {
		t.Fatalf("SetBounds: %v", err)
	}
	if err := s.Restore(blob); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got, ok := s.Get(a.ID)
	if !ok {
		t.Fatalf("frame lost in restore")
	}
	if got.X != 0 || got.Width != 0.2 {
		t.Fatalf("restore did not roll back the edit: %+v", got)
	}
}

func TestReferencing(t *testing.T) {
	s := New()
	target, _ := s.Create("T", "BACKDROP", "", domain.Rect{Width: 0.1, Height: 0.1})
	a, _ := s.Create("A", "BUTTON", "", domain.Rect{Width: 0.1, Height: 0.1})
	_, _ = s.Create("B", "BUTTON", "", domain.Rect{Width: 0.1, Height: 0.1})
	if err := s.AttachRelative(a.ID, 0, target.ID, domain.TopLeft); err != nil {
		t.Fatalf("AttachRelative: %v", err)
	}
	refs := s.Referencing(target.ID)
	if len(refs) != 1 || refs[0] != a.ID {
		t.Fatalf("unexpected referencing set: %v", refs)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	s := New()
	root, _ := s.Create("Root", "BACKDROP", "", domain.Rect{Width: 0.8, Height: 0.6})
	_, _ = s.Create("Child", "TEXT", root.ID, domain.Rect{Width: 0.1, Height: 0.05})

	p := domain.Project{Name: "P", Stage: domain.DefaultStage()}
	s.ToProject(&p)
	if len(p.Frames) != 2 {
		t.Fatalf("expected 2 frames in manifest, got %d", len(p.Frames))
	}
	s2 := FromProject(&p)
	if s2.Len() != 2 {
		t.Fatalf("expected 2 frames after reload, got %d", s2.Len())
	}
	if _, ok := s2.ByName("Child"); !ok {
		t.Fatalf("child lost in round trip")
	}
}
