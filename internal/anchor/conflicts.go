/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anchor

import (
	"fmt"

	"frameforge/internal/domain"
)

// ConflictType classifies the result of the static anchor-list analysis.
type ConflictType string

const (
	ConflictNone               ConflictType = "none"
	ConflictLogical            ConflictType = "logicalConflict"
	ConflictOverConstrained    ConflictType = "overConstrained"
	ConflictInvalidCombination ConflictType = "invalidCombination"
)

// ConflictReport names the offending anchors by index into the analyzed list.
type ConflictReport struct {
	Indices     []int
	Type        ConflictType
	Description string
}

var cornerPoints = []domain.AnchorPoint{
	domain.TopLeft, domain.TopRight, domain.BottomLeft, domain.BottomRight,
}

var edgePoints = []domain.AnchorPoint{
	domain.Left, domain.Right, domain.Top, domain.Bottom,
}

// DetectConflicts statically flags over-constrained or contradictory anchor
// combinations. It looks at the anchor list only, never at the frame graph,
// so it is cheap enough to run on every anchor edit. The checks run in a
// fixed order and short-circuit on the first match:
//
//  1. Two anchors sharing the same point.
//  2. Three corner anchors; or four corners without the full edge set.
//  3. A horizontal and a vertical corner pair mixed, with more than two
//     corners, outside the full 4-corner+4-edge set.
//  4. Edge anchors mixed with corner anchors, unless the edges form exactly
//     a LEFT+RIGHT or TOP+BOTTOM pair with at most two corners, or the full
//     4-corner+4-edge set.
//
// The result is advisory: it drives editor warnings and never blocks storage
// or resolution.
func DetectConflicts(anchors []domain.Anchor) ConflictReport {
	// 1. duplicate point
	for i := 0; i < len(anchors); i++ {
		for j := i + 1; j < len(anchors); j++ {
			if anchors[i].Point == anchors[j].Point {
				return ConflictReport{
					Indices:     []int{i, j},
					Type:        ConflictLogical,
					Description: fmt.Sprintf("two anchors both target %s", anchors[i].Point),
				}
			}
		}
	}

	present := map[domain.AnchorPoint]bool{}
	indexOf := map[domain.AnchorPoint]int{}
	for i, a := range anchors {
		if !present[a.Point] {
			present[a.Point] = true
			indexOf[a.Point] = i
		}
	}

	var cornerIdx, edgeIdx []int
	for _, p := range cornerPoints {
		if present[p] {
			cornerIdx = append(cornerIdx, indexOf[p])
		}
	}
	for _, p := range edgePoints {
		if present[p] {
			edgeIdx = append(edgeIdx, indexOf[p])
		}
	}
	corners := len(cornerIdx)
	edges := len(edgeIdx)
	fullSet := corners == 4 && edges == 4

	// 2. three corners always over-constrain; four do unless all edges join in
	if corners == 3 || (corners == 4 && edges != 4) {
		return ConflictReport{
			Indices:     cornerIdx,
			Type:        ConflictOverConstrained,
			Description: fmt.Sprintf("%d corner anchors over-constrain the rectangle", corners),
		}
	}

	// 3. mixed horizontal/vertical corner pairs
	horizPair := (present[domain.TopLeft] && present[domain.TopRight]) ||
		(present[domain.BottomLeft] && present[domain.BottomRight])
	vertPair := (present[domain.TopLeft] && present[domain.BottomLeft]) ||
		(present[domain.TopRight] && present[domain.BottomRight])
	if horizPair && vertPair && corners > 2 && !fullSet {
		return ConflictReport{
			Indices:     cornerIdx,
			Type:        ConflictInvalidCombination,
			Description: "horizontal and vertical corner pairs cannot be mixed",
		}
	}

	// 4. edge anchors mixed with corner anchors
	if edges > 0 && corners > 0 && !fullSet {
		horizEdges := edges == 2 && present[domain.Left] && present[domain.Right]
		vertEdges := edges == 2 && present[domain.Top] && present[domain.Bottom]
		if !((horizEdges || vertEdges) && corners <= 2) {
			return ConflictReport{
				Indices:     append(append([]int{}, edgeIdx...), cornerIdx...),
				Type:        ConflictInvalidCombination,
				Description: "edge anchors cannot be combined with corner anchors this way",
			}
		}
	}

	return ConflictReport{Indices: []int{}, Type: ConflictNone, Description: ""}
}
