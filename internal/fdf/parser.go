/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package fdf

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"frameforge/internal/domain"
)

// Parse parses frame-definition text into a Document.
// Supported syntax (minimal):
//
//   - Frame blocks: Frame "KIND" "Name" { ... }  — blocks nest; a nested
//     frame is a child of the enclosing one.
//   - Size fields: Width 0.128, / Height 0.064,
//   - Anchors: SetPoint TOPLEFT, "Other", TOPLEFT, 0.01, -0.01,  (relative)
//     or SetPoint TOPLEFT, 0.1, 0.55,  (absolute)
//   - SetAllPoints,  — mirror the parent frame's rectangle.
//   - Texture "path", / Text "value",
//   - Comments: // to end of line. Trailing commas are optional.
//
// Unknown statements and malformed lines are recorded as Errors and skipped;
// parsing never aborts.
func Parse(input string) (Document, []Error) {
	doc := Document{}
	var errs []Error

	reFrame := regexp.MustCompile(`^Frame\s+"([A-Za-z0-9_]+)"\s+"([^"]+)"\s*(\{)?$`)
	reSize := regexp.MustCompile(`^(Width|Height)\s+(-?[0-9.eE+]+)$`)
	reStr := regexp.MustCompile(`^(Texture|Text)\s+"([^"]*)"$`)
	reSetRel := regexp.MustCompile(`^SetPoint\s+([A-Z]+)\s*,\s*"([^"]+)"\s*,\s*([A-Z]+)\s*,\s*(-?[0-9.eE+]+)\s*,\s*(-?[0-9.eE+]+)$`)
	reSetAbs := regexp.MustCompile(`^SetPoint\s+([A-Z]+)\s*,\s*(-?[0-9.eE+]+)\s*,\s*(-?[0-9.eE+]+)$`)

	// stack of open frame blocks; nil slot means a brace we only tolerate
	var stack []*Node
	pendingOpen := false // a Frame header seen, waiting for its {

	addError := func(line int, format string, args ...any) {
		errs = append(errs, Error{Line: line, Msg: fmt.Sprintf(format, args...)})
	}

	attach := func(n Node) *Node {
		if len(stack) == 0 {
			doc.Frames = append(doc.Frames, n)
			return &doc.Frames[len(doc.Frames)-1]
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
		return &parent.Children[len(parent.Children)-1]
	}

	scanner := bufio.NewScanner(strings.NewReader(input))
	lineNo := 0
	var pending *Node
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.Index(line, "//"); i >= 0 {
			line = line[:i]
		}
		trim := strings.TrimSpace(line)
		trim = strings.TrimSuffix(trim, ",")
		if trim == "" {
			continue
		}

		if pendingOpen {
			// Only "{" may follow a Frame header on its own line.
			if trim == "{" {
				pendingOpen = false
				stack = append(stack, pending)
				pending = nil
				continue
			}
			addError(lineNo, "expected '{' after Frame header")
			pendingOpen = false
			pending = nil
		}

		if m := reFrame.FindStringSubmatch(trim); m != nil {
			node := attach(Node{Kind: m[1], Name: m[2]})
			if m[3] == "{" {
				stack = append(stack, node)
			} else {
				pending = node
				pendingOpen = true
			}
			continue
		}
		if trim == "}" {
			if len(stack) == 0 {
				addError(lineNo, "unmatched '}'")
				continue
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if len(stack) == 0 {
			addError(lineNo, "statement outside a Frame block: %q", trim)
			continue
		}
		cur := stack[len(stack)-1]

		switch {
		case trim == "SetAllPoints":
			cur.Points = append(cur.Points, SetPoint{AllPoints: true})
		case reSize.MatchString(trim):
			m := reSize.FindStringSubmatch(trim)
			v, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				addError(lineNo, "bad number %q", m[2])
				continue
			}
			if m[1] == "Width" {
				cur.Width = v
			} else {
				cur.Height = v
			}
		case reStr.MatchString(trim):
			m := reStr.FindStringSubmatch(trim)
			if m[1] == "Texture" {
				cur.Texture = m[2]
			} else {
				cur.Text = m[2]
			}
		case reSetRel.MatchString(trim):
			m := reSetRel.FindStringSubmatch(trim)
			p, ok := domain.ParseAnchorPoint(m[1])
			if !ok {
				addError(lineNo, "unknown anchor point %q", m[1])
				continue
			}
			rp, ok := domain.ParseAnchorPoint(m[3])
			if !ok {
				addError(lineNo, "unknown anchor point %q", m[3])
				continue
			}
			x, err1 := strconv.ParseFloat(m[4], 64)
			y, err2 := strconv.ParseFloat(m[5], 64)
			if err1 != nil || err2 != nil {
				addError(lineNo, "bad SetPoint offsets")
				continue
			}
			cur.Points = append(cur.Points, SetPoint{Point: p, RelativeName: m[2], RelativePoint: rp, X: x, Y: y})
		case reSetAbs.MatchString(trim):
			m := reSetAbs.FindStringSubmatch(trim)
			p, ok := domain.ParseAnchorPoint(m[1])
			if !ok {
				addError(lineNo, "unknown anchor point %q", m[1])
				continue
			}
			x, err1 := strconv.ParseFloat(m[2], 64)
			y, err2 := strconv.ParseFloat(m[3], 64)
			if err1 != nil || err2 != nil {
				addError(lineNo, "bad SetPoint coordinates")
				continue
			}
			cur.Points = append(cur.Points, SetPoint{Point: p, X: x, Y: y})
		default:
			addError(lineNo, "unrecognized statement: %q", trim)
		}
	}
	for range stack {
		addError(lineNo, "unclosed Frame block")
		break
	}
	return doc, errs
}
