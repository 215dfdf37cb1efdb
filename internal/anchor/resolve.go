/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anchor

import (
	"log/slog"

	"frameforge/internal/domain"
	applog "frameforge/internal/log"
)

// Resolve computes a frame's effective rectangle from its anchors and the
// full frame table.
//
// It returns nil if the frame has no anchors, or if none of its anchors has a
// relative reference: pure-absolute anchors need no resolution and the caller
// should use the stored rectangle or BoundsFromAnchors (see EffectiveBounds).
//
// Every anchor's absolute position is computed first, following RelativeTo
// chains recursively. A reference to a missing frame falls back to the
// anchor's raw coordinates; a cyclic chain is cut by a visited set of frame
// ids along the current resolution path and falls back the same way. Neither
// case panics or loops.
//
// With the positions known, the first matching strategy of a fixed priority
// ladder produces the rectangle; an unclassifiable combination yields nil and
// the caller falls back to the stored rectangle.
//
// The frame table is treated as an immutable snapshot for the duration of the
// call. Each call is independent and idempotent; there is no cache, so a deep
// RelativeTo chain costs O(depth) per query, which is fine at editor scale.
func Resolve(f *domain.Frame, table map[string]*domain.Frame) *domain.Rect {
	return resolve(f, table, map[string]bool{})
}

// EffectiveBounds is the caller-facing geometry query: the resolved rectangle
// when the anchors classify, otherwise the rectangle implied by the absolute
// anchors, otherwise the stored one.
func EffectiveBounds(f *domain.Frame, table map[string]*domain.Frame) domain.Rect {
	if r := Resolve(f, table); r != nil {
		return *r
	}
	return BoundsFromAnchors(f.Anchors, f)
}

func resolve(f *domain.Frame, table map[string]*domain.Frame, visited map[string]bool) *domain.Rect {
	if len(f.Anchors) == 0 {
		return nil
	}
	anyRelative := false
	for _, a := range f.Anchors {
		if a.IsRelative() {
			anyRelative = true
			break
		}
	}
	if !anyRelative {
		return nil
	}

	// Mark this frame on the current resolution path so a chain leading back
	// here aborts instead of recursing forever.
	visited[f.ID] = true
	defer delete(visited, f.ID)

	// First anchor naming a point wins; later duplicates are advisory
	// conflicts, not resolution inputs.
	positions := make(map[domain.AnchorPoint]Point, len(f.Anchors))
	for _, a := range f.Anchors {
		if _, seen := positions[a.Point]; seen {
			continue
		}
		positions[a.Point] = anchorAbsolute(f, a, table, visited)
	}

	pos := func(p domain.AnchorPoint) (Point, bool) {
		pt, ok := positions[p]
		return pt, ok
	}
	w, h := f.Width, f.Height

	// Strategy ladder, first match wins.
	if tl, ok := pos(domain.TopLeft); ok {
		if br, ok := pos(domain.BottomRight); ok {
			// 1. rectangle from the main diagonal
			return &domain.Rect{X: tl.X, Y: br.Y, Width: br.X - tl.X, Height: tl.Y - br.Y}
		}
	}
	if tr, ok := pos(domain.TopRight); ok {
		if bl, ok := pos(domain.BottomLeft); ok {
			// 2. rectangle from the anti-diagonal
			return &domain.Rect{X: bl.X, Y: bl.Y, Width: tr.X - bl.X, Height: tr.Y - bl.Y}
		}
	}
	l, hasL := pos(domain.Left)
	r, hasR := pos(domain.Right)
	t, hasT := pos(domain.Top)
	b, hasB := pos(domain.Bottom)
	if hasL && hasR && hasT && hasB {
		// 3. all four edges
		return &domain.Rect{X: l.X, Y: b.Y, Width: r.X - l.X, Height: t.Y - b.Y}
	}
	if tl, ok := pos(domain.TopLeft); ok {
		if tr, ok := pos(domain.TopRight); ok {
			// 4. dynamic width along the top edge; averaging the two Y values
			// tolerates minor numeric drift between the anchors
			y := (tl.Y+tr.Y)/2 - h
			return &domain.Rect{X: tl.X, Y: y, Width: tr.X - tl.X, Height: h}
		}
	}
	if bl, ok := pos(domain.BottomLeft); ok {
		if br, ok := pos(domain.BottomRight); ok {
			// 5. dynamic width along the bottom edge
			y := (bl.Y + br.Y) / 2
			return &domain.Rect{X: bl.X, Y: y, Width: br.X - bl.X, Height: h}
		}
	}
	if tl, ok := pos(domain.TopLeft); ok {
		if bl, ok := pos(domain.BottomLeft); ok {
			// 6. dynamic height along the left edge
			return &domain.Rect{X: tl.X, Y: bl.Y, Width: w, Height: tl.Y - bl.Y}
		}
	}
	if tr, ok := pos(domain.TopRight); ok {
		if br, ok := pos(domain.BottomRight); ok {
			// 7. dynamic height along the right edge
			return &domain.Rect{X: tr.X - w, Y: br.Y, Width: w, Height: tr.Y - br.Y}
		}
	}
	if hasL && hasR {
		// 8. horizontal edge pair only: dynamic width, vertically centered
		y := (l.Y+r.Y)/2 - h/2
		return &domain.Rect{X: l.X, Y: y, Width: r.X - l.X, Height: h}
	}
	if hasT && hasB {
		// 9. vertical edge pair only: dynamic height, horizontally centered
		x := (t.X+b.X)/2 - w/2
		return &domain.Rect{X: x, Y: b.Y, Width: w, Height: t.Y - b.Y}
	}
	if len(positions) == 1 {
		// 10-13. single anchor: fixed size, origin back-solved from the
		// point's offset (covers TOPLEFT, BOTTOMRIGHT, CENTER and the rest
		// uniformly via the inverse point offset)
		for p, pt := range positions {
			off := PointOffset(p, w, h)
			return &domain.Rect{X: pt.X - off.DX, Y: pt.Y - off.DY, Width: w, Height: h}
		}
	}
	// 14. no classifiable combination
	return nil
}

// anchorAbsolute computes the absolute position an anchor pins its point to.
// Absolute anchors are their own position. Relative anchors resolve the
// target frame's effective rectangle first (recursively, cycle-guarded) and
// add the anchor's coordinates as an offset from the target point.
func anchorAbsolute(owner *domain.Frame, a domain.Anchor, table map[string]*domain.Frame, visited map[string]bool) Point {
	if !a.IsRelative() {
		return Point{X: a.X, Y: a.Y}
	}
	target, ok := table[a.RelativeTo]
	if !ok {
		applog.WithComponent("anchor").Warn("anchor references missing frame, using raw offset as absolute",
			slog.String("frame", owner.ID), slog.String("relativeTo", a.RelativeTo))
		return Point{X: a.X, Y: a.Y}
	}
	if visited[target.ID] {
		applog.WithComponent("anchor").Warn("cyclic anchor reference, using raw offset as absolute",
			slog.String("frame", owner.ID), slog.String("relativeTo", a.RelativeTo))
		return Point{X: a.X, Y: a.Y}
	}
	tr := targetRect(target, table, visited)
	base := pointOnRect(tr, a.TargetPoint())
	return Point{X: base.X + a.X, Y: base.Y + a.Y}
}

// targetRect is EffectiveBounds with the visited set threaded through.
func targetRect(f *domain.Frame, table map[string]*domain.Frame, visited map[string]bool) domain.Rect {
	if r := resolve(f, table, visited); r != nil {
		return *r
	}
	return BoundsFromAnchors(f.Anchors, f)
}
