/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"frameforge/internal/anchor"
	"frameforge/internal/bundle"
	"frameforge/internal/config"
	"frameforge/internal/crash"
	"frameforge/internal/domain"
	"frameforge/internal/export"
	"frameforge/internal/fdf"
	applog "frameforge/internal/log"
	"frameforge/internal/preview"
	"frameforge/internal/storage"
	"frameforge/internal/store"
	"frameforge/internal/version"
)

func usage() {
	fmt.Println("Frame Forge — game UI layout tool")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  frameforge version|-v|--version           Show version")
	fmt.Println("  frameforge init <dir> <name>              Create a new layout project")
	fmt.Println("  frameforge open <dir>                     Open project and print a summary")
	fmt.Println("  frameforge validate <dir>                 Check layout.json against the schema")
	fmt.Println("  frameforge resolve <dir>                  Print the resolved rectangle of every frame")
	fmt.Println("  frameforge conflicts <dir>                Report conflicting anchor combinations")
	fmt.Println("  frameforge import-fdf <dir> <file>        Import frames from frame-definition text")
	fmt.Println("  frameforge export-fdf <dir> [out]         Write the layout as frame-definition text")
	fmt.Println("  frameforge export <dir> [lua|jass|ts] [out]  Generate map-script code")
	fmt.Println("  frameforge pdf <dir> [out]                Render a PDF layout sheet")
	fmt.Println("  frameforge png <dir> [out]                Render a PNG wireframe preview")
	fmt.Println("  frameforge search <dir> <query>           Full-text search over frame names and text")
	fmt.Println("  frameforge refs <dir> <frame>             List frames anchored to the given frame")
	fmt.Println("  frameforge bundle <dir> <zip>             Pack the project into a shareable zip")
	fmt.Println("  frameforge install <dir> <zip>            Unpack a bundle into a project directory")
}

func main() {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	var ph *storage.ProjectHandle
	defer func() { crash.Recover(ph) }()

	cfg, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	args := os.Args
	if len(args) < 2 {
		usage()
		return
	}

	fail := func(err error) {
		l.Error("command failed", slog.String("command", args[1]), slog.Any("err", err))
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	need := func(n int, what string) {
		if len(args) < n {
			fmt.Printf("%s requires %s\n", args[1], what)
			usage()
			os.Exit(2)
		}
	}
	open := func(dir string) *storage.ProjectHandle {
		abs, _ := filepath.Abs(dir)
		h, err := storage.Open(abs)
		if err != nil {
			fail(err)
		}
		ph = h
		return h
	}

	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println(version.String())

	case "init":
		need(4, "<dir> and <name>")
		abs, _ := filepath.Abs(args[2])
		p := domain.Project{
			Name:  args[3],
			Stage: domain.Stage{Width: cfg.Editor.StageWidth, Height: cfg.Editor.StageHeight},
		}
		h, err := storage.InitProject(abs, p)
		if err != nil {
			fail(err)
		}
		ph = h
		fmt.Println("Created project at", abs)

	case "open":
		need(3, "<dir>")
		h := open(args[2])
		fmt.Printf("Opened project: %s\n", h.Project.Name)
		fmt.Printf("Stage: %g x %g\n", h.Project.Stage.Width, h.Project.Stage.Height)
		fmt.Printf("Frames: %d\n", len(h.Project.Frames))
		fmt.Println("Root:", h.Root)

	case "validate":
		need(3, "<dir>")
		abs, _ := filepath.Abs(args[2])
		data, err := os.ReadFile(filepath.Join(abs, storage.ManifestFileName))
		if err != nil {
			fail(err)
		}
		if err := storage.ValidateManifest(data); err != nil {
			fail(err)
		}
		fmt.Println("Manifest is valid.")

	case "resolve":
		need(3, "<dir>")
		h := open(args[2])
		st := store.FromProject(&h.Project)
		for _, f := range st.Frames() {
			r := anchor.EffectiveBounds(f, st.Table())
			fmt.Printf("%-24s %-10s x=%.5f y=%.5f w=%.5f h=%.5f\n", f.Name, f.Kind, r.X, r.Y, r.Width, r.Height)
		}

	case "conflicts":
		need(3, "<dir>")
		h := open(args[2])
		st := store.FromProject(&h.Project)
		found := 0
		for _, f := range st.Frames() {
			if rep := anchor.DetectConflicts(f.Anchors); rep.Type != anchor.ConflictNone {
				found++
				fmt.Printf("%s: %s (%s, anchors %v)\n", f.Name, rep.Description, rep.Type, rep.Indices)
			}
		}
		if found == 0 {
			fmt.Println("No conflicts.")
		} else {
			os.Exit(1)
		}

	case "import-fdf":
		need(4, "<dir> and <file>")
		h := open(args[2])
		text, err := os.ReadFile(args[3])
		if err != nil {
			fail(err)
		}
		doc, perrs := fdf.Parse(string(text))
		frames, cerrs := doc.ToFrames()
		for _, e := range append(perrs, cerrs...) {
			if e.Line > 0 {
				fmt.Printf("warning: line %d: %s\n", e.Line, e.Msg)
			} else {
				fmt.Printf("warning: %s\n", e.Msg)
			}
		}
		h.Project.Frames = append(h.Project.Frames, frames...)
		if err := storage.Save(h); err != nil {
			fail(err)
		}
		fmt.Printf("Imported %d frames.\n", len(frames))

	case "export-fdf":
		need(3, "<dir>")
		h := open(args[2])
		st := store.FromProject(&h.Project)
		out := filepath.Join(h.Root, "exports", "layout.fdf")
		if len(args) > 3 {
			out = args[3]
		}
		if err := writeTextFile(out, fdf.Format(st.Frames(), cfg.Export.Precision)); err != nil {
			fail(err)
		}
		fmt.Println("Wrote", out)

	case "export":
		need(3, "<dir>")
		h := open(args[2])
		st := store.FromProject(&h.Project)
		format := cfg.Export.Format
		if len(args) > 3 {
			format = args[3]
		}
		var ext string
		switch format {
		case "lua":
			ext = ".lua"
		case "jass":
			ext = ".j"
		case "ts", "typescript":
			ext = ".ts"
		default:
			fail(fmt.Errorf("unknown export format %q (want lua, jass or ts)", format))
		}
		out := filepath.Join(h.Root, "exports", "layout"+ext)
		if len(args) > 4 {
			out = args[4]
		}
		var b strings.Builder
		opt := export.Options{Precision: cfg.Export.Precision}
		switch format {
		case "lua":
			err = export.WriteLua(&b, st.Frames(), opt)
		case "jass":
			err = export.WriteJass(&b, st.Frames(), opt)
		default:
			err = export.WriteTypeScript(&b, st.Frames(), opt)
		}
		if err != nil {
			fail(err)
		}
		if err := writeTextFile(out, b.String()); err != nil {
			fail(err)
		}
		fmt.Println("Wrote", out)

	case "pdf":
		need(3, "<dir>")
		h := open(args[2])
		st := store.FromProject(&h.Project)
		out := filepath.Join(h.Root, "exports", "layout.pdf")
		if len(args) > 3 {
			out = args[3]
		}
		err := export.WritePDF(st.Frames(), st.Table(), h.Project.Stage, out, export.PDFOptions{Title: h.Project.Name})
		if err != nil {
			fail(err)
		}
		fmt.Println("Wrote", out)

	case "png":
		need(3, "<dir>")
		h := open(args[2])
		st := store.FromProject(&h.Project)
		out := filepath.Join(h.Root, "previews", "layout.png")
		if len(args) > 3 {
			out = args[3]
		}
		if err := preview.WritePNG(st.Frames(), st.Table(), h.Project.Stage, out, preview.Options{}); err != nil {
			fail(err)
		}
		fmt.Println("Wrote", out)

	case "search":
		need(4, "<dir> and <query>")
		h := open(args[2])
		ctx := context.Background()
		if err := storage.RebuildIndex(ctx, h.Root, h.Project); err != nil {
			fail(err)
		}
		db, err := storage.InitOrOpenIndex(h.Root)
		if err != nil {
			fail(err)
		}
		defer db.Close()
		hits, err := storage.SearchFrames(ctx, db, args[3], 50)
		if err != nil {
			fail(err)
		}
		for _, hit := range hits {
			fmt.Printf("%-24s %-10s %s\n", hit.Name, hit.Kind, hit.ID)
		}
		if len(hits) == 0 {
			fmt.Println("No matches.")
		}

	case "refs":
		need(4, "<dir> and <frame>")
		h := open(args[2])
		st := store.FromProject(&h.Project)
		target, ok := st.Get(args[3])
		if !ok {
			target, ok = st.ByName(args[3])
		}
		if !ok {
			fail(fmt.Errorf("no frame with id or name %q", args[3]))
		}
		ids := st.Referencing(target.ID)
		for _, id := range ids {
			if f, ok := st.Get(id); ok {
				fmt.Printf("%-24s %s\n", f.Name, f.ID)
			}
		}
		if len(ids) == 0 {
			fmt.Println("No frames are anchored to", target.Name)
		}

	case "bundle":
		need(4, "<dir> and <zip>")
		h := open(args[2])
		if err := bundle.Export(h.Root, args[3]); err != nil {
			fail(err)
		}
		fmt.Println("Wrote", args[3])

	case "install":
		need(4, "<dir> and <zip>")
		abs, _ := filepath.Abs(args[2])
		n, err := bundle.Install(abs, args[3])
		if err != nil {
			fail(err)
		}
		fmt.Printf("Installed %d files into %s\n", n, abs)

	default:
		usage()
		os.Exit(2)
	}
}

func writeTextFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
