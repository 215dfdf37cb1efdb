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
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"frameforge/internal/anchor"
	"frameforge/internal/domain"
)

// PDFOptions controls the layout sheet export.
// Units are points (pt); the UI coordinate space is scaled up by Scale.
type PDFOptions struct {
	// Scale is points per UI unit. The default 1000 renders the 0.8 x 0.6
	// stage as an 800 x 600 pt page.
	Scale float64
	// Title is the PDF document title; the project name usually.
	Title string
	// IncludeHidden draws invisible frames in gray instead of skipping them.
	IncludeHidden bool
}

// WritePDF renders the resolved layout to a single-page PDF at outPath.
// Frames are drawn at their anchor-resolved rectangles, labeled by name.
// table is the id lookup used for anchor resolution and normally covers the
// whole document, even when frames is a subset.
func WritePDF(frames []*domain.Frame, table map[string]*domain.Frame, stage domain.Stage, outPath string, opt PDFOptions) error {
	scale := opt.Scale
	if scale <= 0 {
		scale = 1000
	}
	if stage.Width <= 0 || stage.Height <= 0 {
		stage = domain.DefaultStage()
	}
	pageW := stage.Width * scale
	pageH := stage.Height * scale

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
		OrientationStr: "",
	})
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, false)
	}
	pdf.SetAuthor("Frame Forge", false)
	pdf.SetFont("Helvetica", "", 9)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pageW, Ht: pageH})

	// Stage border
	pdf.SetDrawColor(255, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Rect(0, 0, pageW, pageH, "D")

	// The UI origin is bottom-left with Y up; PDF pages start at the top-left
	// with Y down, so rectangles flip vertically.
	for _, f := range frames {
		if !f.Visible && !opt.IncludeHidden {
			continue
		}
		r := anchor.EffectiveBounds(f, table)
		x := r.X * scale
		y := (stage.Height - r.Y - r.Height) * scale
		w := r.Width * scale
		h := r.Height * scale

		if f.Visible {
			pdf.SetDrawColor(0, 0, 0)
			pdf.SetTextColor(0, 0, 0)
		} else {
			pdf.SetDrawColor(160, 160, 160)
			pdf.SetTextColor(160, 160, 160)
		}
		pdf.SetLineWidth(0.8)
		pdf.Rect(x, y, w, h, "D")
		pdf.Text(x+2, y+10, f.Name)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
