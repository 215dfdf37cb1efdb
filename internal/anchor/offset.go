/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package anchor

import "frameforge/internal/domain"

// RelativeOffset computes the offset that re-expresses an anchor of current
// as relative to targetPoint on target while preserving current's visual
// position: the difference between the anchor point's absolute position and
// the target point's absolute position.
//
// It is invoked at the moment the user attaches a relative reference to a
// previously absolute anchor, so the conversion does not move the frame, and
// again on demand when the user wants to re-anchor against the target's
// current position instead of the historical one.
func RelativeOffset(current *domain.Frame, currentAnchor domain.Anchor, target *domain.Frame, targetPoint domain.AnchorPoint) Offset {
	cp := AbsolutePosition(current, currentAnchor.Point)
	tp := AbsolutePosition(target, targetPoint)
	return Offset{DX: cp.X - tp.X, DY: cp.Y - tp.Y}
}
