/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package anchor implements the anchor constraint resolution engine: the pure
// functions that turn a frame's declarative anchor list into an effective
// on-screen rectangle, and back. All coordinates are Y-up with the origin at
// the bottom-left. The engine never mutates its inputs and never panics; every
// malformed input degrades to a best-effort geometric fallback.
package anchor

import "frameforge/internal/domain"

// Point is an absolute position in UI space.
type Point struct {
	X float64
	Y float64
}

// Offset is a displacement between two points.
type Offset struct {
	DX float64
	DY float64
}

// PointOffset returns the offset from a rectangle's bottom-left corner to the
// named point, in the rectangle's own local coordinate system. Unknown point
// tags fall back to the zero offset.
func PointOffset(p domain.AnchorPoint, width, height float64) Offset {
	switch p {
	case domain.TopLeft:
		return Offset{0, height}
	case domain.Top:
		return Offset{width / 2, height}
	case domain.TopRight:
		return Offset{width, height}
	case domain.Left:
		return Offset{0, height / 2}
	case domain.Center:
		return Offset{width / 2, height / 2}
	case domain.Right:
		return Offset{width, height / 2}
	case domain.BottomLeft:
		return Offset{0, 0}
	case domain.Bottom:
		return Offset{width / 2, 0}
	case domain.BottomRight:
		return Offset{width, 0}
	default:
		return Offset{}
	}
}

// AbsolutePosition returns the absolute UI position of the named point on the
// frame's stored rectangle.
func AbsolutePosition(f *domain.Frame, p domain.AnchorPoint) Point {
	off := PointOffset(p, f.Width, f.Height)
	return Point{X: f.X + off.DX, Y: f.Y + off.DY}
}

// pointOnRect returns the absolute position of the named point on an arbitrary
// rectangle.
func pointOnRect(r domain.Rect, p domain.AnchorPoint) Point {
	off := PointOffset(p, r.Width, r.Height)
	return Point{X: r.X + off.DX, Y: r.Y + off.DY}
}
