/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fdf

import (
	"fmt"
	"strconv"
	"strings"

	"frameforge/internal/domain"
)

// Format serializes frames into frame-definition text. Children are nested
// inside their parent's block; anchor targets are written by frame name, so
// anchors referencing an id outside the given set are written as absolute.
// precision is the number of fractional digits for coordinates.
func Format(frames []*domain.Frame, precision int) string {
	if precision <= 0 {
		precision = 5
	}
	names := map[string]string{}
	children := map[string][]*domain.Frame{}
	for _, f := range frames {
		names[f.ID] = f.Name
		children[f.ParentID] = append(children[f.ParentID], f)
	}

	var b strings.Builder
	var write func(f *domain.Frame, depth int)
	write = func(f *domain.Frame, depth int) {
		ind := strings.Repeat("    ", depth)
		fmt.Fprintf(&b, "%sFrame \"%s\" \"%s\" {\n", ind, f.Kind, f.Name)
		if f.Width != 0 {
			fmt.Fprintf(&b, "%s    Width %s,\n", ind, num(f.Width, precision))
		}
		if f.Height != 0 {
			fmt.Fprintf(&b, "%s    Height %s,\n", ind, num(f.Height, precision))
		}
		// Quoted values are written verbatim; the format has no escape
		// sequences and texture paths routinely contain backslashes.
		if f.Texture != "" {
			fmt.Fprintf(&b, "%s    Texture \"%s\",\n", ind, f.Texture)
		}
		if f.Text != "" {
			fmt.Fprintf(&b, "%s    Text \"%s\",\n", ind, f.Text)
		}
		for _, a := range f.Anchors {
			if target, ok := names[a.RelativeTo]; a.RelativeTo != "" && ok {
				fmt.Fprintf(&b, "%s    SetPoint %s, \"%s\", %s, %s, %s,\n",
					ind, a.Point, target, a.TargetPoint(), num(a.X, precision), num(a.Y, precision))
			} else {
				fmt.Fprintf(&b, "%s    SetPoint %s, %s, %s,\n",
					ind, a.Point, num(a.X, precision), num(a.Y, precision))
			}
		}
		for _, c := range children[f.ID] {
			write(c, depth+1)
		}
		fmt.Fprintf(&b, "%s}\n", ind)
	}

	// Roots are frames with no parent inside the set.
	for _, f := range frames {
		if _, ok := names[f.ParentID]; !ok {
			write(f, 0)
		}
	}
	return b.String()
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
