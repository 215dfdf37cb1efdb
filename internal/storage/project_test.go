/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"frameforge/internal/domain"
)

func minimalProject() domain.Project {
	return domain.Project{
		Name:  "Test Layout",
		Stage: domain.DefaultStage(),
		Frames: []domain.Frame{
			{
				ID: "f1", Name: "Panel", Kind: "BACKDROP",
				X: 0.1, Y: 0.1, Width: 0.3, Height: 0.2,
				Anchors: []domain.Anchor{{Point: domain.TopLeft, X: 0.1, Y: 0.3}},
				Visible: true,
			},
		},
	}
}

func TestInitProjectScaffolds(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalProject())
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	if _, err := os.Stat(ph.ManifestPath); err != nil {
		t.Fatalf("manifest not written: %v", err)
	}
	for _, d := range standardSubDirs {
		if fi, err := os.Stat(filepath.Join(root, d)); err != nil || !fi.IsDir() {
			t.Fatalf("subdir %s missing", d)
		}
	}
}

func TestOpenRoundTrip(t *testing.T) {
	root := t.TempDir()
	if _, err := InitProject(root, minimalProject()); err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	ph, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ph.Project.Name != "Test Layout" || len(ph.Project.Frames) != 1 {
		t.Fatalf("unexpected project: %+v", ph.Project)
	}
	a := ph.Project.Frames[0].Anchors[0]
	if a.Point != domain.TopLeft || a.X != 0.1 || a.Y != 0.3 {
		t.Fatalf("anchor did not survive the round trip: %+v", a)
	}
}

func TestSaveCreatesBackup(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalProject())
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	ph.Project.Name = "Renamed"
	if err := Save(ph); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if names := backupNames(filepath.Join(root, BackupsDirName)); len(names) == 0 {
		t.Fatalf("saving over an existing manifest must create a backup")
	}
}

func TestOpenRecoversFromBackup(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalProject())
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	if err := Save(ph); err != nil { // creates a backup of the good manifest
		t.Fatalf("Save: %v", err)
	}
	if err := os.WriteFile(ph.ManifestPath, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("corrupt manifest: %v", err)
	}
	got, err := Open(root)
	if err != nil {
		t.Fatalf("Open should recover from backup: %v", err)
	}
	if got.Project.Name != "Test Layout" {
		t.Fatalf("recovered wrong project: %q", got.Project.Name)
	}
}

func TestOpenNormalizesZeroStage(t *testing.T) {
	root := t.TempDir()
	p := minimalProject()
	p.Stage = domain.Stage{}
	if _, err := InitProject(root, p); err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	ph, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ph.Project.Stage != domain.DefaultStage() {
		t.Fatalf("zero stage should default, got %+v", ph.Project.Stage)
	}
}

func TestBackupPruning(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalProject())
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	bdir := filepath.Join(root, BackupsDirName)
	// Seed more synthetic backups than the cap allows.
	for i := 0; i < maxBackups+5; i++ {
		name := filepath.Join(bdir, fmt.Sprintf("%s.20200101-%06d.bak", ManifestFileName, i))
		if err := os.WriteFile(name, []byte("{}"), 0o644); err != nil {
			t.Fatalf("seed backup: %v", err)
		}
	}
	if err := Save(ph); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if n := len(backupNames(bdir)); n > maxBackups {
		t.Fatalf("pruning left %d backups, cap is %d", n, maxBackups)
	}
	// The newest seeded backup must survive pruning.
	survivor := filepath.Join(bdir, fmt.Sprintf("%s.20200101-%06d.bak", ManifestFileName, maxBackups+4))
	if _, err := os.Stat(survivor); err != nil {
		t.Fatalf("newest backup was pruned: %v", err)
	}
}

func TestSaveAs(t *testing.T) {
	root := t.TempDir()
	ph, err := InitProject(root, minimalProject())
	if err != nil {
		t.Fatalf("InitProject: %v", err)
	}
	newRoot := filepath.Join(t.TempDir(), "copy")
	if err := SaveAs(ph, newRoot); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	if ph.Root != newRoot || !strings.HasPrefix(ph.ManifestPath, newRoot) {
		t.Fatalf("handle not updated: %+v", ph)
	}
	if _, err := Open(newRoot); err != nil {
		t.Fatalf("open copied project: %v", err)
	}
}
