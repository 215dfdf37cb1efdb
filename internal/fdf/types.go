/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package fdf reads and writes the frame-definition text format: nested
// Frame blocks carrying size fields and SetPoint anchor statements.
package fdf

import "frameforge/internal/domain"

// Node is one parsed Frame block.
type Node struct {
	Kind     string
	Name     string
	Width    float64
	Height   float64
	Texture  string
	Text     string
	Points   []SetPoint
	Children []Node
}

// SetPoint is one anchor statement. RelativeName is empty for absolute
// points. AllPoints marks a SetAllPoints statement, which mirrors the parent
// frame's rectangle.
type SetPoint struct {
	Point         domain.AnchorPoint
	RelativeName  string
	RelativePoint domain.AnchorPoint
	X             float64
	Y             float64
	AllPoints     bool
}

// Document is a parsed frame-definition file.
type Document struct {
	Frames []Node
}

// Error is a recoverable parse problem tied to an input line. The parser
// collects errors and keeps going; a best-effort document is always returned.
type Error struct {
	Line int
	Msg  string
}
