/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package preview renders a frame layout as a PNG wireframe: the stage border
// plus one labeled rectangle per frame at its anchor-resolved position.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"frameforge/internal/anchor"
	"frameforge/internal/domain"
)

// Options controls PNG rendering.
type Options struct {
	// WidthPx is the output image width in pixels (default 800); height
	// follows from the stage aspect ratio.
	WidthPx int
	// IncludeHidden draws invisible frames in gray instead of skipping them.
	IncludeHidden bool
	// Labels draws the frame name inside each rectangle (default on via
	// Render; pass NoLabels to suppress).
	NoLabels bool
}

var (
	stageColor  = color.RGBA{R: 255, A: 255}
	frameColor  = color.RGBA{A: 255}
	hiddenColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)

// Render rasterizes the layout into an RGBA image. table is the id lookup
// used for anchor resolution. The UI origin is bottom-left with Y up, so
// rows flip vertically relative to image coordinates.
func Render(frames []*domain.Frame, table map[string]*domain.Frame, stage domain.Stage, opt Options) *image.RGBA {
	if stage.Width <= 0 || stage.Height <= 0 {
		stage = domain.DefaultStage()
	}
	w := opt.WidthPx
	if w <= 0 {
		w = 800
	}
	scale := float64(w) / stage.Width
	h := int(math.Round(stage.Height * scale))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	strokeRect(img, 0, 0, w-1, h-1, stageColor)

	face := basicfont.Face7x13
	for _, f := range frames {
		if !f.Visible && !opt.IncludeHidden {
			continue
		}
		col := frameColor
		if !f.Visible {
			col = hiddenColor
		}
		r := anchor.EffectiveBounds(f, table)
		x0 := int(math.Round(r.X * scale))
		y0 := int(math.Round((stage.Height - r.Y - r.Height) * scale))
		x1 := int(math.Round((r.X + r.Width) * scale))
		y1 := int(math.Round((stage.Height - r.Y) * scale))
		strokeRect(img, x0, y0, x1, y1, col)

		if !opt.NoLabels {
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(col),
				Face: face,
				Dot:  fixed.P(x0+3, y0+face.Ascent+2),
			}
			d.DrawString(f.Name)
		}
	}
	return img
}

// WritePNG renders the layout and writes it to outPath.
func WritePNG(frames []*domain.Frame, table map[string]*domain.Frame, stage domain.Stage, outPath string, opt Options) error {
	img := Render(frames, table, stage, opt)
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	fh, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(fh, img); err != nil {
		fh.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// strokeRect draws a one pixel rectangle outline, clipped to the image.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for x := x0; x <= x1; x++ {
		setClipped(img, x, y0, col)
		setClipped(img, x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		setClipped(img, x0, y, col)
		setClipped(img, x1, y, col)
	}
}

func setClipped(img *image.RGBA, x, y int, col color.Color) {
	if image.Pt(x, y).In(img.Bounds()) {
		img.Set(x, y, col)
	}
}
