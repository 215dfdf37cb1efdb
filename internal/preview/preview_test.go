package preview

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"frameforge/internal/domain"
)

func fixture() ([]*domain.Frame, map[string]*domain.Frame) {
	frames := []*domain.Frame{
		{
			ID: "a", Name: "Panel", Kind: "BACKDROP",
			Width: 0.4, Height: 0.3,
			Anchors: []domain.Anchor{{Point: domain.TopLeft, X: 0.2, Y: 0.45}},
			Visible: true,
		},
		{
			ID: "b", Name: "Hidden", Kind: "TEXT",
			X: 0.1, Y: 0.1, Width: 0.1, Height: 0.05,
		},
	}
	table := map[string]*domain.Frame{}
	for _, f := range frames {
		table[f.ID] = f
	}
	return frames, table
}

func TestRenderDimensions(t *testing.T) {
	frames, table := fixture()
	img := Render(frames, table, domain.DefaultStage(), Options{WidthPx: 400})
	b := img.Bounds()
	if b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("stage aspect should give 400x300, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestRenderDrawsResolvedRect(t *testing.T) {
	frames, table := fixture()
	img := Render(frames, table, domain.DefaultStage(), Options{WidthPx: 800, NoLabels: true})
	// Panel top-left (0.2, 0.45) in UI space maps to pixel (200, 150) at
	// 1000 px per unit along X (800 px / 0.8 units).
	r, g, b, _ := img.At(200, 150).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("expected black frame outline at (200,150), got %v", img.At(200, 150))
	}
	// Interior stays white.
	if img.At(250, 200) != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("interior should stay white, got %v", img.At(250, 200))
	}
}

func TestRenderSkipsHiddenByDefault(t *testing.T) {
	frames, table := fixture()
	plain := Render(frames, table, domain.DefaultStage(), Options{WidthPx: 400, NoLabels: true})
	with := Render(frames, table, domain.DefaultStage(), Options{WidthPx: 400, NoLabels: true, IncludeHidden: true})
	// Hidden frame top edge: UI (0.1, 0.15) -> pixel (50, 225) at 500 px/unit.
	if plain.At(60, 225) == (color.RGBA{R: 160, G: 160, B: 160, A: 255}) {
		t.Fatalf("hidden frame drawn without IncludeHidden")
	}
	if with.At(60, 225) != (color.RGBA{R: 160, G: 160, B: 160, A: 255}) {
		t.Fatalf("IncludeHidden should draw the hidden frame in gray, got %v", with.At(60, 225))
	}
}

func TestWritePNG(t *testing.T) {
	frames, table := fixture()
	out := filepath.Join(t.TempDir(), "previews", "layout.png")
	if err := WritePNG(frames, table, domain.DefaultStage(), out, Options{WidthPx: 200}); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if img.Bounds().Dx() != 200 {
		t.Fatalf("unexpected width %d", img.Bounds().Dx())
	}
}
