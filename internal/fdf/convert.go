/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fdf

import (
	"github.com/google/uuid"

	"frameforge/internal/anchor"
	"frameforge/internal/domain"
)

// ToFrames flattens a parsed document into domain frames. Frame names are
// the reference currency of the text format; they are mapped to fresh ids
// here, and SetPoint statements referencing a name that does not appear in
// the document degrade to absolute anchors with an Error record.
func (d Document) ToFrames() ([]domain.Frame, []Error) {
	var errs []Error
	ids := map[string]string{}

	// First pass: assign ids so forward references resolve.
	var assign func(nodes []Node)
	assign = func(nodes []Node) {
		for i := range nodes {
			if _, dup := ids[nodes[i].Name]; dup {
				errs = append(errs, Error{Msg: "duplicate frame name " + nodes[i].Name})
			}
			ids[nodes[i].Name] = uuid.NewString()
			assign(nodes[i].Children)
		}
	}
	assign(d.Frames)

	var out []domain.Frame
	var walk func(nodes []Node, parentName string)
	walk = func(nodes []Node, parentName string) {
		for i := range nodes {
			n := nodes[i]
			f := domain.Frame{
				ID:      ids[n.Name],
				Name:    n.Name,
				Kind:    n.Kind,
				Width:   n.Width,
				Height:  n.Height,
				Texture: n.Texture,
				Text:    n.Text,
				Visible: true,
			}
			if parentName != "" {
				f.ParentID = ids[parentName]
			}
			for _, sp := range n.Points {
				f.Anchors = append(f.Anchors, convertPoint(sp, parentName, ids, &errs)...)
			}
			if len(f.Anchors) == 0 {
				f.Anchors = anchor.DefaultAnchors(f.X, f.Y, f.Width, f.Height)
			}
			out = append(out, f)
			walk(n.Children, n.Name)
		}
	}
	walk(d.Frames, "")
	return out, errs
}

func convertPoint(sp SetPoint, parentName string, ids map[string]string, errs *[]Error) []domain.Anchor {
	if sp.AllPoints {
		if parentName == "" {
			*errs = append(*errs, Error{Msg: "SetAllPoints on a top-level frame"})
			return nil
		}
		pid := ids[parentName]
		tl := domain.TopLeft
		br := domain.BottomRight
		return []domain.Anchor{
			{Point: domain.TopLeft, RelativeTo: pid, RelativePoint: &tl},
			{Point: domain.BottomRight, RelativeTo: pid, RelativePoint: &br},
		}
	}
	if sp.RelativeName == "" {
		return []domain.Anchor{{Point: sp.Point, X: sp.X, Y: sp.Y}}
	}
	tid, ok := ids[sp.RelativeName]
	if !ok {
		*errs = append(*errs, Error{Msg: "SetPoint references unknown frame " + sp.RelativeName})
		return []domain.Anchor{{Point: sp.Point, X: sp.X, Y: sp.Y}}
	}
	rp := sp.RelativePoint
	return []domain.Anchor{{Point: sp.Point, X: sp.X, Y: sp.Y, RelativeTo: tid, RelativePoint: &rp}}
}
