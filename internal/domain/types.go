/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the core data model for Frame Forge: the frame tree of a
// game UI description and its anchor constraints. Coordinates are in UI space:
// origin at the bottom-left, Y increasing upward, the 4:3 game screen spanning
// 0.8 x 0.6.

// AnchorPoint names one of the nine positions on a rectangle: the four
// corners, the four edge midpoints, and the center. The numeric tags are the
// on-disk representation and must never be reordered.
type AnchorPoint int

const (
	TopLeft AnchorPoint = iota
	Top
	TopRight
	Left
	Center
	Right
	BottomLeft
	Bottom
	BottomRight
)

var anchorPointNames = map[AnchorPoint]string{
	TopLeft:     "TOPLEFT",
	Top:         "TOP",
	TopRight:    "TOPRIGHT",
	Left:        "LEFT",
	Center:      "CENTER",
	Right:       "RIGHT",
	BottomLeft:  "BOTTOMLEFT",
	Bottom:      "BOTTOM",
	BottomRight: "BOTTOMRIGHT",
}

// String returns the FDF name of the point (e.g. "TOPLEFT").
func (p AnchorPoint) String() string {
	if n, ok := anchorPointNames[p]; ok {
		return n
	}
	return "UNKNOWN"
}

// ParseAnchorPoint maps an FDF point name back to its tag. The boolean is
// false for unknown names.
func ParseAnchorPoint(name string) (AnchorPoint, bool) {
	for p, n := range anchorPointNames {
		if n == name {
			return p, true
		}
	}
	return TopLeft, false
}

// Valid reports whether p is one of the nine defined points.
func (p AnchorPoint) Valid() bool {
	return p >= TopLeft && p <= BottomRight
}

// Anchor is one positional constraint on a frame. With RelativeTo empty, X/Y
// are absolute UI coordinates of the named point. With RelativeTo set, X/Y are
// an offset from the RelativePoint of the referenced frame (TOPLEFT when
// RelativePoint is nil).
//
// An anchor is only meaningful together with the frame that owns it and,
// transitively, every frame reachable through RelativeTo. RelativeTo is a
// non-owning back-reference: it never implies lifetime or deletion cascade,
// and a dangling or cyclic reference is tolerated at resolution time.
type Anchor struct {
	Point         AnchorPoint  `json:"point"`
	X             float64      `json:"x"`
	Y             float64      `json:"y"`
	RelativeTo    string       `json:"relativeTo,omitempty"`
	RelativePoint *AnchorPoint `json:"relativePoint,omitempty"`
}

// TargetPoint returns the point on the referenced frame the offset is taken
// from, defaulting to TOPLEFT.
func (a Anchor) TargetPoint() AnchorPoint {
	if a.RelativePoint != nil {
		return *a.RelativePoint
	}
	return TopLeft
}

// IsRelative reports whether the anchor is pinned to another frame.
func (a Anchor) IsRelative() bool { return a.RelativeTo != "" }

// Frame is one UI widget node. X/Y/Width/Height are the authoritative
// fallback geometry and are always present; Anchors, when non-empty, take
// precedence for display. Anchor order is semantically significant: the first
// anchor wins when a dynamic-size combination is collapsed on manual resize.
type Frame struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Kind     string   `json:"kind"` // BACKDROP, BUTTON, TEXT, ...
	ParentID string   `json:"parentId,omitempty"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Width    float64  `json:"width"`
	Height   float64  `json:"height"`
	Anchors  []Anchor `json:"anchors"`
	Texture  string   `json:"texture,omitempty"`
	Text     string   `json:"text,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Visible  bool     `json:"visible"`
	Tooltip  string   `json:"tooltip,omitempty"`
}

// Rect is an axis-aligned rectangle in UI space, min corner plus size.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds returns the frame's stored rectangle.
func (f *Frame) Bounds() Rect {
	return Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
}

// Metadata contains optional descriptive metadata for a project.
type Metadata struct {
	Author  string `json:"author,omitempty"`
	Game    string `json:"game,omitempty"`
	Notes   string `json:"notes,omitempty"`
	Created string `json:"created,omitempty"`
}

// Stage describes the design surface the frames are laid out on.
type Stage struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Project represents a UI layout project and its metadata. It serializes to a
// human-readable JSON manifest. Frames are kept flat; ParentID links form the
// tree.
type Project struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata,omitempty"`
	Stage    Stage    `json:"stage"`
	Frames   []Frame  `json:"frames"`
}

// DefaultStage is the standard 4:3 game screen in UI coordinates.
func DefaultStage() Stage { return Stage{Width: 0.8, Height: 0.6} }
