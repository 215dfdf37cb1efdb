/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export turns a frame layout into artifacts: generated map-script
// code (Lua, JASS, TypeScript) that recreates the frames at runtime, and a
// PDF layout sheet of the resolved rectangles for review.
package export

import (
	"strconv"
	"strings"

	"frameforge/internal/domain"
)

// Options controls script generation.
type Options struct {
	// Precision is the number of fractional digits for coordinates (default 5).
	Precision int
	// FuncName names the generated entry function (default "createFrames").
	FuncName string
}

func (o Options) precision() int {
	if o.Precision <= 0 {
		return 5
	}
	return o.Precision
}

func (o Options) funcName() string {
	if o.FuncName == "" {
		return "createFrames"
	}
	return o.FuncName
}

// ordered returns frames parent-first: every frame appears after the frame
// its ParentID names, so generated create calls can pass the parent handle.
// Frames whose parent is not in the set count as roots.
func ordered(frames []*domain.Frame) []*domain.Frame {
	inSet := map[string]bool{}
	children := map[string][]*domain.Frame{}
	for _, f := range frames {
		inSet[f.ID] = true
	}
	var roots []*domain.Frame
	for _, f := range frames {
		if inSet[f.ParentID] {
			children[f.ParentID] = append(children[f.ParentID], f)
		} else {
			roots = append(roots, f)
		}
	}
	out := make([]*domain.Frame, 0, len(frames))
	var walk func(f *domain.Frame)
	walk = func(f *domain.Frame) {
		out = append(out, f)
		for _, c := range children[f.ID] {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

// identifiers maps frame ids to unique script identifiers derived from the
// frame names. Non-identifier characters are dropped; collisions and empty
// results get a numeric suffix.
func identifiers(frames []*domain.Frame) map[string]string {
	taken := map[string]bool{}
	out := map[string]string{}
	for _, f := range frames {
		base := sanitizeIdent(f.Name)
		name := base
		for i := 2; taken[name]; i++ {
			name = base + strconv.Itoa(i)
		}
		taken[name] = true
		out[f.ID] = name
	}
	return out
}

func sanitizeIdent(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if b.Len() == 0 {
				b.WriteByte('f')
			}
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "frame"
	}
	return b.String()
}

// framePoint renders an anchor point as the runtime constant name.
func framePoint(p domain.AnchorPoint) string {
	return "FRAMEPOINT_" + p.String()
}

func num(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" || s == "" {
		s = "0"
	}
	return s
}

// quote escapes a string for Lua, JASS and TypeScript double-quoted literals.
// Texture paths carry backslashes, which all three languages escape the same
// way.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// anchorStatements returns the anchors to emit for a frame. A frame without
// anchors is pinned by its stored bounds at the top-left corner.
func anchorStatements(f *domain.Frame) []domain.Anchor {
	if len(f.Anchors) > 0 {
		return f.Anchors
	}
	return []domain.Anchor{{Point: domain.TopLeft, X: f.X, Y: f.Y + f.Height}}
}
