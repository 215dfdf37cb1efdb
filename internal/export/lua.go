/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"io"

	"frameforge/internal/domain"
)

// WriteLua generates a Lua function that recreates the layout with
// BlzCreateFrameByType / BlzFrameSetPoint calls. Frames are created
// parent-first; anchor statements follow all creates so that anchors may
// reference frames declared later in the set.
func WriteLua(w io.Writer, frames []*domain.Frame, opt Options) error {
	prec := opt.precision()
	order := ordered(frames)
	ids := identifiers(order)

	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(w, format, args...)
	}

	wf("-- Generated by Frame Forge. Do not edit by hand.\n")
	wf("function %s()\n", opt.funcName())
	wf("    local gameUI = BlzGetOriginFrame(ORIGIN_FRAME_GAME_UI, 0)\n")
	for _, f := range order {
		parent := "gameUI"
		if p, ok := ids[f.ParentID]; ok && f.ParentID != "" {
			parent = p
		}
		wf("    local %s = BlzCreateFrameByType(%s, %s, %s, \"\", 0)\n",
			ids[f.ID], quote(f.Kind), quote(f.Name), parent)
	}
	for _, f := range order {
		v := ids[f.ID]
		if f.Width != 0 || f.Height != 0 {
			wf("    BlzFrameSetSize(%s, %s, %s)\n", v, num(f.Width, prec), num(f.Height, prec))
		}
		for _, a := range anchorStatements(f) {
			if t, ok := ids[a.RelativeTo]; a.IsRelative() && ok {
				wf("    BlzFrameSetPoint(%s, %s, %s, %s, %s, %s)\n",
					v, framePoint(a.Point), t, framePoint(a.TargetPoint()), num(a.X, prec), num(a.Y, prec))
			} else {
				wf("    BlzFrameSetAbsPoint(%s, %s, %s, %s)\n",
					v, framePoint(a.Point), num(a.X, prec), num(a.Y, prec))
			}
		}
		if f.Texture != "" {
			wf("    BlzFrameSetTexture(%s, %s, 0, true)\n", v, quote(f.Texture))
		}
		if f.Text != "" {
			wf("    BlzFrameSetText(%s, %s)\n", v, quote(f.Text))
		}
		if f.Scale != 0 && f.Scale != 1 {
			wf("    BlzFrameSetScale(%s, %s)\n", v, num(f.Scale, prec))
		}
		if !f.Visible {
			wf("    BlzFrameSetVisible(%s, false)\n", v)
		}
	}
	wf("end\n")
	return werr
}
