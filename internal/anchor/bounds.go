/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anchor

import "frameforge/internal/domain"

// Converter between a frame's editable rectangle and its anchor list. Called
// whenever the user edits the position/size fields directly; the resulting
// anchor list replaces the frame's list wholesale in the frame store.

// DefaultAnchors produces the single TOPLEFT anchor a frame is created with:
// the top-left absolute corner of the given rectangle in Y-up space.
func DefaultAnchors(x, y, width, height float64) []domain.Anchor {
	return []domain.Anchor{{Point: domain.TopLeft, X: x, Y: y + height}}
}

// BoundsFromAnchors is the editor-facing inverse: the rectangle implied by the
// anchor coordinates alone, without resolving relative references.
//
// With both TOPLEFT and BOTTOMRIGHT present the rectangle is derived purely
// from their coordinates (dynamic sizing). Otherwise the frame's stored
// width/height are kept and the origin is back-solved from the first anchor's
// point and position. With zero anchors the stored rectangle is returned
// unchanged.
func BoundsFromAnchors(anchors []domain.Anchor, f *domain.Frame) domain.Rect {
	if len(anchors) == 0 {
		return f.Bounds()
	}
	tl, hasTL := findPoint(anchors, domain.TopLeft)
	br, hasBR := findPoint(anchors, domain.BottomRight)
	if hasTL && hasBR {
		return domain.Rect{X: tl.X, Y: br.Y, Width: br.X - tl.X, Height: tl.Y - br.Y}
	}
	a := anchors[0]
	off := PointOffset(a.Point, f.Width, f.Height)
	return domain.Rect{X: a.X - off.DX, Y: a.Y - off.DY, Width: f.Width, Height: f.Height}
}

// UpdateAnchorsFromBounds recomputes a frame's anchor list after the user
// edited its rectangle to (x, y, width, height). The contract:
//
//   - Anchors with a relative reference are left untouched; their offset is
//     defined against another frame and must not silently change when this
//     frame's absolute bounds move.
//   - Absolute anchors are recomputed to the point positions implied by the
//     new rectangle.
//   - If the list contains a dynamic-size-implying combination and more than
//     one anchor, the whole list collapses to its first element before the
//     recompute. Without the collapse the manual resize would be immediately
//     re-derived away by the remaining anchor pair. First-declared wins; this
//     is a UX tie-break, not an error.
//
// The input slice is never mutated; a fresh list is returned.
func UpdateAnchorsFromBounds(anchors []domain.Anchor, x, y, width, height float64) []domain.Anchor {
	if len(anchors) == 0 {
		return DefaultAnchors(x, y, width, height)
	}
	src := anchors
	if len(src) > 1 && hasDynamicSizePair(src) {
		src = src[:1]
	}
	out := make([]domain.Anchor, len(src))
	for i, a := range src {
		if a.IsRelative() {
			out[i] = a
			continue
		}
		off := PointOffset(a.Point, width, height)
		a.X = x + off.DX
		a.Y = y + off.DY
		out[i] = a
	}
	return out
}

// hasDynamicSizePair reports whether the list contains a combination that
// derives width or height from two anchors: TOPLEFT+BOTTOMRIGHT,
// TOPRIGHT+BOTTOMLEFT, LEFT+RIGHT or TOP+BOTTOM.
func hasDynamicSizePair(anchors []domain.Anchor) bool {
	present := map[domain.AnchorPoint]bool{}
	for _, a := range anchors {
		present[a.Point] = true
	}
	switch {
	case present[domain.TopLeft] && present[domain.BottomRight]:
		return true
	case present[domain.TopRight] && present[domain.BottomLeft]:
		return true
	case present[domain.Left] && present[domain.Right]:
		return true
	case present[domain.Top] && present[domain.Bottom]:
		return true
	}
	return false
}

// findPoint returns the first anchor with the given point.
func findPoint(anchors []domain.Anchor, p domain.AnchorPoint) (domain.Anchor, bool) {
	for _, a := range anchors {
		if a.Point == p {
			return a, true
		}
	}
	return domain.Anchor{}, false
}
